package rescue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/page"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("index")
	require.NoError(t, err)
	require.Equal(t, ModeIndex, m)

	m, err = ParseMode("tablespace")
	require.NoError(t, err)
	require.Equal(t, ModeTablespace, m)

	_, err = ParseMode("bogus")
	require.Error(t, err)
}

func TestKeyForIndexMode(t *testing.T) {
	id := uint64(42)
	d := page.Descriptor{Type: format.PageTypeIndex, SpaceID: 3, IndexID: &id}
	k, ok := ModeIndex.KeyFor(d)
	require.True(t, ok)
	require.Equal(t, Key(42), k)

	// Non-INDEX pages are dropped entirely in index mode.
	_, ok = ModeIndex.KeyFor(page.Descriptor{Type: format.PageTypeBlob, SpaceID: 3})
	require.False(t, ok)
}

func TestKeyForTablespaceMode(t *testing.T) {
	// Tablespace mode groups every page type by space id.
	k, ok := ModeTablespace.KeyFor(page.Descriptor{Type: format.PageTypeBlob, SpaceID: 3})
	require.True(t, ok)
	require.Equal(t, Key(3), k)

	id := uint64(42)
	k, ok = ModeTablespace.KeyFor(page.Descriptor{Type: format.PageTypeIndex, SpaceID: 9, IndexID: &id})
	require.True(t, ok)
	require.Equal(t, Key(9), k)
}

func TestFileNames(t *testing.T) {
	require.Equal(t, "0000000000000007.page", ModeIndex.FileName(7))
	require.Equal(t, "00000003.pages", ModeTablespace.FileName(3))
	require.Equal(t, "FIL_PAGE_INDEX", ModeIndex.Subdir())
	require.Equal(t, "BY_TABLESPACE", ModeTablespace.Subdir())
}
