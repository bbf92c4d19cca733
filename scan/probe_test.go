package scan_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/internal/pagetest"
	"github.com/wilhasse/go-ibdrescue/scan"
)

func buildFile(pageSize, n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(pagetest.Build(pagetest.Spec{
			PageSize: pageSize,
			Type:     format.PageTypeIndex,
			SpaceID:  1,
			PageNo:   uint32(i),
			LSN:      uint64(i + 1),
			IndexID:  5,
		}))
	}
	return buf.Bytes()
}

func TestProbeFindsEachSupportedSize(t *testing.T) {
	for _, pageSize := range format.PageSizes {
		input := buildFile(pageSize, 8)
		got, err := scan.ProbePageSize(bytes.NewReader(input), int64(len(input)))
		require.NoError(t, err)
		require.Equal(t, pageSize, got, "page size %d", pageSize)
	}
}

func TestProbeToleratesLeadingDamage(t *testing.T) {
	// A corrupted first page must not defeat probing as long as the
	// sample window still contains valid pages.
	input := buildFile(format.DefaultPageSize, 8)
	copy(input, pagetest.Garbage(format.DefaultPageSize, 3))
	got, err := scan.ProbePageSize(bytes.NewReader(input), int64(len(input)))
	require.NoError(t, err)
	require.Equal(t, format.DefaultPageSize, got)
}

func TestProbeUnknownOnNoise(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 8; i++ {
		buf.Write(pagetest.Garbage(format.DefaultPageSize, uint64(i)))
	}
	_, err := scan.ProbePageSize(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.ErrorIs(t, err, scan.ErrUnknownPageSize)
}

func TestProbeEmptyInput(t *testing.T) {
	_, err := scan.ProbePageSize(bytes.NewReader(nil), 0)
	require.ErrorIs(t, err, scan.ErrUnknownPageSize)
}
