// exports.go - Re-exports for main package API
package ibdrescue

import (
	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/page"
	"github.com/wilhasse/go-ibdrescue/rescue"
	"github.com/wilhasse/go-ibdrescue/scan"
)

// Re-export types from format package
type (
	PageType = format.PageType
)

// Re-export constants from format package
const (
	DefaultPageSize   = format.DefaultPageSize
	PageTypeAllocated = format.PageTypeAllocated
	PageTypeIndex     = format.PageTypeIndex
	PageTypeUndoLog   = format.PageTypeUndoLog
	PageTypeBlob      = format.PageTypeBlob
	PageTypeSDI       = format.PageTypeSDI
)

// Re-export types from page package
type (
	FilHeader  = page.FilHeader
	FilTrailer = page.FilTrailer
	Descriptor = page.Descriptor
)

// Re-export functions from page package
var (
	ParseFilHeader  = page.ParseFilHeader
	ParseFilTrailer = page.ParseFilTrailer
	Describe        = page.Describe
	NewPageReader   = page.NewReader
)

// Re-export types from checksum package
type Variant = checksum.Variant

var VerifyChecksum = checksum.Verify

// Re-export scanning entry points
type (
	RawBlock = scan.RawBlock
	Outcome  = scan.Outcome
)

var (
	ProbePageSize = scan.ProbePageSize
	Classify      = scan.Classify
)

var ErrUnknownPageSize = scan.ErrUnknownPageSize

// Re-export the recovery engine
type (
	Mode     = rescue.Mode
	Key      = rescue.Key
	Options  = rescue.Options
	Stats    = rescue.Stats
	Progress = rescue.Progress
)

const (
	ModeIndex      = rescue.ModeIndex
	ModeTablespace = rescue.ModeTablespace
)

var (
	Run       = rescue.Run
	SortPages = rescue.SortPages
)
