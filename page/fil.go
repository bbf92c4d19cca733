// fil.go - FIL header and trailer parsing for InnoDB pages
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdrescue/format"
)

const filNull uint32 = 0xFFFFFFFF

// FilHeader is the 38-byte header present on every page regardless of page
// size or page type.
type FilHeader struct {
	Checksum   uint32
	PageNumber uint32
	Prev       *uint32
	Next       *uint32
	LastModLSN uint64
	PageType   format.PageType
	FlushLSN   uint64
	SpaceID    uint32
}

func ParseFilHeader(p []byte) (FilHeader, error) {
	if len(p) < format.FilHeaderSize {
		return FilHeader{}, fmt.Errorf("short page: %d", len(p))
	}
	chk := format.Be32(p, 0)
	pg := format.Be32(p, 4)
	prev := format.Be32(p, 8)
	next := format.Be32(p, 12)
	lsn := format.Be64(p, 16)
	pt := format.Be16(p, 24)
	flush := format.Be64(p, 26)
	space := format.Be32(p, 34)
	var prevPtr, nextPtr *uint32
	if prev != filNull {
		prevPtr = &prev
	}
	if next != filNull {
		nextPtr = &next
	}
	return FilHeader{
		Checksum: chk, PageNumber: pg, Prev: prevPtr, Next: nextPtr,
		LastModLSN: lsn, PageType: format.PageType(pt), FlushLSN: flush, SpaceID: space,
	}, nil
}

// FilTrailer is the last 8 bytes of the page: the old-style checksum and
// the low 32 bits of the LSN, used to detect torn writes.
type FilTrailer struct {
	Checksum uint32
	Low32LSN uint32
}

// ParseFilTrailer reads the trailer of a full page. The trailer position
// depends on the page size, so p must be the entire page.
func ParseFilTrailer(p []byte) (FilTrailer, error) {
	if len(p) < format.FilHeaderSize+format.FilTrailerSize {
		return FilTrailer{}, fmt.Errorf("short trailer")
	}
	off := len(p) - format.FilTrailerSize
	return FilTrailer{
		Checksum: format.Be32(p, off+0),
		Low32LSN: format.Be32(p, off+4),
	}, nil
}

// TornWrite reports whether the trailer's low LSN bytes disagree with the
// header LSN, which happens when only one half of the page hit disk.
func (t FilTrailer) TornWrite(h FilHeader) bool {
	return uint32(h.LastModLSN&0xffffffff) != t.Low32LSN
}
