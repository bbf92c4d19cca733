package scan_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/internal/pagetest"
	"github.com/wilhasse/go-ibdrescue/scan"
)

func TestClassifyValidIndexPage(t *testing.T) {
	p := pagetest.Build(pagetest.Spec{
		Type:    format.PageTypeIndex,
		SpaceID: 3,
		PageNo:  2,
		LSN:     1000,
		IndexID: 7,
	})
	out := scan.Classify(scan.RawBlock{Offset: 2 * int64(len(p)), Data: p})
	require.True(t, out.Valid)
	require.Equal(t, format.PageTypeIndex, out.Desc.Type)
	require.Equal(t, uint32(3), out.Desc.SpaceID)
	require.Equal(t, uint32(2), out.Desc.PageNumber)
	require.Equal(t, uint64(1000), out.Desc.LSN)
	require.Equal(t, checksum.VariantCRC32C, out.Desc.Variant)
	require.NotNil(t, out.Desc.IndexID)
	require.Equal(t, uint64(7), *out.Desc.IndexID)
	require.True(t, out.OffsetConsistent)
}

func TestClassifyRelocatedPage(t *testing.T) {
	// A valid page found at the wrong offset is still valid; the
	// mismatch is only a corroborating signal.
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeUndoLog, SpaceID: 1, PageNo: 9, LSN: 5})
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.True(t, out.Valid)
	require.False(t, out.OffsetConsistent)
}

func TestClassifyChecksumMismatch(t *testing.T) {
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeIndex, SpaceID: 1, PageNo: 4, LSN: 10, IndexID: 2})
	pagetest.CorruptBody(p)
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.False(t, out.Valid)
	require.Equal(t, scan.ReasonChecksumMismatch, out.Reason)
	// Diagnostics still carry the parsed header.
	require.Equal(t, uint32(4), out.Desc.PageNumber)
}

func TestClassifyNoise(t *testing.T) {
	p := pagetest.Garbage(format.DefaultPageSize, 11)
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.False(t, out.Valid)
	require.Equal(t, scan.ReasonNotAPage, out.Reason)
}

func TestClassifyTornPageIsNotAPage(t *testing.T) {
	// Known type and plausible header, but checksum fails and the
	// trailer LSN stamp disagrees: torn beyond recognition.
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeIndex, SpaceID: 1, PageNo: 1, LSN: 0xFFFF, IndexID: 1})
	pagetest.CorruptBody(p)
	binary.BigEndian.PutUint32(p[len(p)-4:], 0x1234)
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.False(t, out.Valid)
	require.Equal(t, scan.ReasonNotAPage, out.Reason)
}

func TestClassifyEmptyPage(t *testing.T) {
	p := make([]byte, format.DefaultPageSize)
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.False(t, out.Valid)
	require.Equal(t, scan.ReasonEmptyPage, out.Reason)
}

func TestClassifyUnknownTypePreservesRawCode(t *testing.T) {
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeBlob, SpaceID: 2, PageNo: 1})
	binary.BigEndian.PutUint16(p[24:], 0x7777)
	pagetest.Seal(p, checksum.VariantCRC32C)
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.False(t, out.Valid)
	require.Equal(t, scan.ReasonNotAPage, out.Reason)
	require.Equal(t, format.PageType(0x7777), out.Desc.Type)
}

func TestClassifyLegacyChecksumPage(t *testing.T) {
	p := pagetest.Build(pagetest.Spec{
		Type:    format.PageTypeIndex,
		SpaceID: 8,
		PageNo:  0,
		LSN:     42,
		IndexID: 13,
		Variant: checksum.VariantInnoDB,
	})
	out := scan.Classify(scan.RawBlock{Offset: 0, Data: p})
	require.True(t, out.Valid)
	require.Equal(t, checksum.VariantInnoDB, out.Desc.Variant)
}
