// classify.go - Candidate block validation pipeline
package scan

import (
	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/page"
)

// Reason classifies why a candidate block was rejected. Rejections are a
// normal outcome on damaged input, counted but never persisted.
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonChecksumMismatch: the header/trailer structure looks like a
	// page but no checksum variant matched.
	ReasonChecksumMismatch
	// ReasonNotAPage: the block does not resemble a page at all
	// (unrecognized type code, or inconsistent header/trailer).
	ReasonNotAPage
	// ReasonEmptyPage: a freshly allocated page with a zeroed checksum;
	// structurally fine but carries no recoverable payload.
	ReasonEmptyPage
	// ReasonReadError: the block could not be read from the input.
	ReasonReadError
)

func (r Reason) String() string {
	switch r {
	case ReasonChecksumMismatch:
		return "checksum-mismatch"
	case ReasonNotAPage:
		return "not-a-page"
	case ReasonEmptyPage:
		return "empty-page"
	case ReasonReadError:
		return "read-error"
	}
	return "none"
}

// Outcome is the result of classifying one candidate block. Desc is
// populated whenever the header parsed, including for rejected blocks, so
// diagnostics can report what almost matched.
type Outcome struct {
	Valid  bool
	Reason Reason
	Desc   page.Descriptor
	// OffsetConsistent reports whether the stored page number agrees with
	// the block's source offset. Recovered pages may have been relocated,
	// so this is a corroborating signal, not a validity requirement.
	OffsetConsistent bool
}

// Classify runs the checksum verifier and header parser over one candidate
// block. It is stateless: one invocation per block, independent of all
// others, which makes it the unit of concurrent execution.
func Classify(b RawBlock) Outcome {
	h, err := page.ParseFilHeader(b.Data)
	if err != nil {
		return Outcome{Reason: ReasonNotAPage}
	}
	t, err := page.ParseFilTrailer(b.Data)
	if err != nil {
		return Outcome{Reason: ReasonNotAPage}
	}

	if !h.PageType.Known() {
		desc, _ := page.Describe(b.Data, checksum.VariantNone)
		return Outcome{Reason: ReasonNotAPage, Desc: desc}
	}
	if h.PageType == format.PageTypeAllocated && h.Checksum == 0 {
		desc, _ := page.Describe(b.Data, checksum.VariantNone)
		return Outcome{Reason: ReasonEmptyPage, Desc: desc}
	}

	variant := checksum.Verify(b.Data)
	if variant == checksum.VariantNone {
		desc, _ := page.Describe(b.Data, checksum.VariantNone)
		// A matching low-LSN stamp means this really was a page once;
		// anything else is indistinguishable from random bytes.
		reason := ReasonNotAPage
		if !t.TornWrite(h) {
			reason = ReasonChecksumMismatch
		}
		return Outcome{Reason: reason, Desc: desc}
	}

	desc, err := page.Describe(b.Data, variant)
	if err != nil {
		return Outcome{Reason: ReasonNotAPage}
	}
	return Outcome{
		Valid:            true,
		Desc:             desc,
		OffsetConsistent: int64(desc.PageNumber)*int64(len(b.Data)) == b.Offset,
	}
}
