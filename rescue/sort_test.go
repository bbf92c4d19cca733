package rescue_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/internal/pagetest"
	"github.com/wilhasse/go-ibdrescue/rescue"
)

// memWriterAt is a growable in-memory WriterAt; gaps read as zeros, like
// holes in a sparse file.
type memWriterAt struct {
	buf []byte
}

func (w *memWriterAt) WriteAt(p []byte, off int64) (int, error) {
	if need := int(off) + len(p); need > len(w.buf) {
		w.buf = append(w.buf, make([]byte, need-len(w.buf))...)
	}
	return copy(w.buf[off:], p), nil
}

func TestSortPagesPlacesByPageNumber(t *testing.T) {
	p2 := pagetest.Build(pagetest.Spec{Type: format.PageTypeIndex, SpaceID: 1, PageNo: 2, LSN: 5, IndexID: 3})
	p0 := pagetest.Build(pagetest.Spec{Type: format.PageTypeFspHdr, SpaceID: 1, PageNo: 0, LSN: 5})

	var in bytes.Buffer
	in.Write(p2)
	in.Write(p0)

	out := &memWriterAt{}
	stats, err := rescue.SortPages(&in, out, ps, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), stats.PagesIn)
	require.Equal(t, uint64(2), stats.PagesPlaced)
	require.Equal(t, uint32(2), stats.MaxPageNumber)
	require.False(t, stats.InputSorted)
	require.Zero(t, stats.InvalidChecksums)

	require.Len(t, out.buf, 3*ps)
	require.Equal(t, p0, out.buf[:ps])
	// Page 1 was never recovered; the gap stays zeroed.
	require.Equal(t, make([]byte, ps), out.buf[ps:2*ps])
	require.Equal(t, p2, out.buf[2*ps:])
}

func TestSortPagesDetectsSortedInput(t *testing.T) {
	var in bytes.Buffer
	for i := 0; i < 3; i++ {
		in.Write(pagetest.Build(pagetest.Spec{Type: format.PageTypeIndex, SpaceID: 1, PageNo: uint32(i), LSN: 9, IndexID: 3}))
	}
	stats, err := rescue.SortPages(&in, &memWriterAt{}, ps, nil)
	require.NoError(t, err)
	require.True(t, stats.InputSorted)
}

func TestSortPagesSkipsAllocated(t *testing.T) {
	var in bytes.Buffer
	in.Write(make([]byte, ps)) // allocated page, nothing to place
	in.Write(pagetest.Build(pagetest.Spec{Type: format.PageTypeBlob, SpaceID: 1, PageNo: 1, LSN: 2}))

	out := &memWriterAt{}
	stats, err := rescue.SortPages(&in, out, ps, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), stats.PagesIn)
	require.Equal(t, uint64(1), stats.PagesPlaced)
}

func TestSortPagesCountsInvalidChecksums(t *testing.T) {
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeIndex, SpaceID: 1, PageNo: 0, LSN: 2, IndexID: 3})
	pagetest.CorruptBody(p)

	stats, err := rescue.SortPages(bytes.NewReader(p), &memWriterAt{}, ps, nil)
	require.NoError(t, err)
	// Corrupt copies are still placed; a damaged page beats a hole.
	require.Equal(t, uint64(1), stats.PagesPlaced)
	require.Equal(t, uint64(1), stats.InvalidChecksums)
}

func TestSortPagesBadPageSize(t *testing.T) {
	_, err := rescue.SortPages(bytes.NewReader(nil), &memWriterAt{}, 1234, nil)
	require.Error(t, err)
}
