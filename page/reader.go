// reader.go - Random-access page reads from an intact file
package page

import (
	"fmt"
	"io"

	"github.com/wilhasse/go-ibdrescue/format"
)

// Reader reads whole pages by page number from a well-formed tablespace
// file. The recovery scanner does not trust page numbers; this is for
// inspecting individual pages of intact or already-sorted files.
type Reader struct {
	r        io.ReaderAt
	pageSize int
}

func NewReader(r io.ReaderAt, pageSize int) (*Reader, error) {
	if !format.ValidPageSize(pageSize) {
		return nil, fmt.Errorf("unsupported page size %d", pageSize)
	}
	return &Reader{r: r, pageSize: pageSize}, nil
}

func (pr *Reader) PageSize() int { return pr.pageSize }

func (pr *Reader) ReadPage(pageNo uint32) ([]byte, error) {
	buf := make([]byte, pr.pageSize)
	off := int64(pageNo) * int64(pr.pageSize)
	if _, err := pr.r.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("read page %d: %w", pageNo, err)
	}
	return buf, nil
}
