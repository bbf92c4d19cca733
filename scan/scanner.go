// scanner.go - Page-aligned candidate block production
package scan

import (
	"io"

	"github.com/pkg/errors"
)

// RawBlock is one page-sized candidate read at Offset. Data aliases the
// scanner's internal buffer and is only valid until the next call to Next;
// callers that keep a page must copy it.
type RawBlock struct {
	Offset int64
	Data   []byte
}

// Scanner walks an input at successive page-aligned offsets. Pages are
// always written at page-size boundaries within a tablespace, so scanning
// at finer granularity multiplies cost without finding more pages. The
// scanner advances past read errors so a bad sector costs one page, not
// the rest of the range.
type Scanner struct {
	r        io.ReaderAt
	pageSize int
	start    int64
	next     int64
	end      int64
	buf      []byte
}

// NewScanner scans [start, end) of r in steps of pageSize. start must be
// page-aligned; a final block shorter than pageSize is dropped.
func NewScanner(r io.ReaderAt, pageSize int, start, end int64) *Scanner {
	return &Scanner{
		r:        r,
		pageSize: pageSize,
		start:    start,
		next:     start,
		end:      end,
		buf:      make([]byte, pageSize),
	}
}

// Next returns the candidate at the current offset and advances by exactly
// one page. io.EOF signals the end of the range. Any other error reports
// an unreadable page; the scanner has already skipped past it.
func (s *Scanner) Next() (RawBlock, error) {
	if s.next+int64(s.pageSize) > s.end {
		return RawBlock{}, io.EOF
	}
	off := s.next
	s.next += int64(s.pageSize)

	n, err := s.r.ReadAt(s.buf, off)
	if n == s.pageSize {
		return RawBlock{Offset: off, Data: s.buf}, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Truncated tail, not an error.
		return RawBlock{}, io.EOF
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return RawBlock{Offset: off}, errors.Wrapf(err, "read page at offset %d", off)
}

// Reset rewinds the scanner to the start of its range.
func (s *Scanner) Reset() { s.next = s.start }

// Chunk is a contiguous page-aligned sub-range of the input, scanned by a
// single worker.
type Chunk struct {
	Index int
	Start int64
	End   int64
}

// Partition splits [0, size) into page-aligned chunks of roughly chunkSize
// bytes. Chunks are contiguous with no overlap or gap; the last chunk
// absorbs the remainder (its truncated tail, if any, is dropped by the
// scanner).
func Partition(size, chunkSize int64, pageSize int) []Chunk {
	ps := int64(pageSize)
	if chunkSize < ps {
		chunkSize = ps
	}
	chunkSize -= chunkSize % ps

	var chunks []Chunk
	for off := int64(0); off < size; off += chunkSize {
		end := off + chunkSize
		if end > size {
			end = size
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Start: off, End: end})
	}
	return chunks
}
