// index.go - Index header fields needed to attribute an INDEX page
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdrescue/format"
)

// IndexHeader carries the subset of the 36-byte index header the recovery
// engine uses: the owning index id and the B-tree level, read at a fixed
// offset after the FIL header on INDEX pages.
type IndexHeader struct {
	PageLevel uint16
	IndexID   uint64
}

func ParseIndexHeader(p []byte) (IndexHeader, error) {
	if len(p) < format.FilHeaderSize+format.IndexHeaderSize {
		return IndexHeader{}, fmt.Errorf("short index header")
	}
	off := format.FilHeaderSize
	return IndexHeader{
		PageLevel: format.Be16(p, off+26),
		IndexID:   format.Be64(p, off+format.IndexHeaderIDOff),
	}, nil
}
