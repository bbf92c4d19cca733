package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/internal/pagetest"
)

func TestVerifyMatchesSealedVariant(t *testing.T) {
	for _, v := range []checksum.Variant{
		checksum.VariantCRC32C,
		checksum.VariantInnoDB,
		checksum.VariantMagic,
	} {
		t.Run(v.String(), func(t *testing.T) {
			p := pagetest.Build(pagetest.Spec{
				Type:    format.PageTypeIndex,
				SpaceID: 3,
				PageNo:  5,
				LSN:     0x1122334455,
				IndexID: 7,
				Variant: v,
			})
			require.Equal(t, v, checksum.Verify(p))
		})
	}
}

func TestVerifyRejectsBodyBitFlip(t *testing.T) {
	// A single flipped bit inside the body must defeat every variant.
	for _, v := range []checksum.Variant{checksum.VariantCRC32C, checksum.VariantInnoDB} {
		t.Run(v.String(), func(t *testing.T) {
			p := pagetest.Build(pagetest.Spec{
				Type:    format.PageTypeUndoLog,
				SpaceID: 1,
				PageNo:  2,
				LSN:     99,
				Variant: v,
			})
			pagetest.CorruptBody(p)
			require.Equal(t, checksum.VariantNone, checksum.Verify(p))
		})
	}
}

func TestVerifyRejectsNoise(t *testing.T) {
	require.Equal(t, checksum.VariantNone, checksum.Verify(pagetest.Garbage(format.DefaultPageSize, 42)))
}

func TestVariantsDisagree(t *testing.T) {
	// The two real algorithms must not produce the same value for the
	// same content, otherwise variant attribution is meaningless.
	p := pagetest.Build(pagetest.Spec{Type: format.PageTypeBlob, SpaceID: 9, PageNo: 1, LSN: 7})
	require.NotEqual(t, checksum.CRC32C(p), checksum.InnoDB(p))
}

func TestChecksumCoversAllPageSizes(t *testing.T) {
	for _, ps := range format.PageSizes {
		p := pagetest.Build(pagetest.Spec{PageSize: ps, Type: format.PageTypeSys, SpaceID: 2, PageNo: 8, LSN: 1})
		require.Equal(t, checksum.VariantCRC32C, checksum.Verify(p))
		pagetest.CorruptBody(p)
		require.Equal(t, checksum.VariantNone, checksum.Verify(p))
	}
}
