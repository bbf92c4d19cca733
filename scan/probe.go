// probe.go - Page size detection
package scan

import (
	"io"

	"github.com/pkg/errors"

	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
)

// ErrUnknownPageSize means probing found no page size with enough valid
// candidates; the caller may retry with an explicit override.
var ErrUnknownPageSize = errors.New("page size could not be determined")

// probeWindowPages caps how many candidates are sampled per page size.
const probeWindowPages = 64

// ProbePageSize determines the page size of an input by trying every
// supported size against a sample window at the start and picking the one
// with the most checksum-valid candidates. The page size is a property of
// the original tablespace configuration and is not recoverable from file
// metadata once that metadata is lost, so it has to be inferred from page
// content.
func ProbePageSize(r io.ReaderAt, size int64) (int, error) {
	best, bestValid := 0, 0
	for _, ps := range format.PageSizes {
		valid := probeOne(r, size, ps)
		if valid > bestValid {
			best, bestValid = ps, valid
		}
	}
	if bestValid == 0 {
		return 0, ErrUnknownPageSize
	}
	return best, nil
}

func probeOne(r io.ReaderAt, size int64, pageSize int) int {
	end := int64(pageSize) * probeWindowPages
	if end > size {
		end = size
	}
	sc := NewScanner(r, pageSize, 0, end)
	valid := 0
	for {
		b, err := sc.Next()
		if err == io.EOF {
			return valid
		}
		if err != nil {
			continue
		}
		if checksum.Verify(b.Data) != checksum.VariantNone {
			valid++
		}
	}
}
