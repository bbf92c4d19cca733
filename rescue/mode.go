// mode.go - Extraction modes and output routing keys
package rescue

import (
	"fmt"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/page"
)

// Mode selects how validated pages are grouped into output files.
type Mode int

const (
	// ModeIndex groups INDEX pages by index id; other page types are
	// dropped.
	ModeIndex Mode = iota
	// ModeTablespace groups every validated page by space id.
	ModeTablespace
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "index":
		return ModeIndex, nil
	case "tablespace":
		return ModeTablespace, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want index or tablespace)", s)
}

func (m Mode) String() string {
	if m == ModeTablespace {
		return "tablespace"
	}
	return "index"
}

// Subdir is the per-mode directory created under the output root.
func (m Mode) Subdir() string {
	if m == ModeTablespace {
		return "BY_TABLESPACE"
	}
	return "FIL_PAGE_INDEX"
}

// Key identifies one output stream: an index id in index mode, a space id
// in tablespace mode. Keys are discovered lazily as pages validate.
type Key uint64

// KeyFor maps a validated page descriptor to its output key. ok is false
// when the page is dropped in this mode (non-INDEX pages in index mode).
func (m Mode) KeyFor(d page.Descriptor) (Key, bool) {
	switch m {
	case ModeTablespace:
		return Key(d.SpaceID), true
	default:
		if d.Type != format.PageTypeIndex || d.IndexID == nil {
			return 0, false
		}
		return Key(*d.IndexID), true
	}
}

// FileName is the deterministic output file name for a key.
func (m Mode) FileName(k Key) string {
	if m == ModeTablespace {
		return fmt.Sprintf("%08d.pages", uint64(k))
	}
	return fmt.Sprintf("%016d.page", uint64(k))
}
