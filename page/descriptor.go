// descriptor.go - Structured view over a raw candidate page
package page

import (
	"fmt"

	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
)

// Descriptor is everything the recovery engine knows about a candidate
// page without interpreting its row content. IndexID is set if and only if
// the page is an INDEX page.
type Descriptor struct {
	Type       format.PageType
	SpaceID    uint32
	PageNumber uint32
	LSN        uint64
	IndexID    *uint64
	Checksum   uint32
	Variant    checksum.Variant
}

// Describe parses the fixed-offset fields of a full page into a
// Descriptor. The checksum variant is recorded as given (VariantNone while
// probing or for rejected pages); parsing succeeds either way so rejected
// pages can still be reported.
func Describe(p []byte, variant checksum.Variant) (Descriptor, error) {
	if !format.ValidPageSize(len(p)) {
		return Descriptor{}, fmt.Errorf("bad page length %d", len(p))
	}
	h, err := ParseFilHeader(p)
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{
		Type:       h.PageType,
		SpaceID:    h.SpaceID,
		PageNumber: h.PageNumber,
		LSN:        h.LastModLSN,
		Checksum:   h.Checksum,
		Variant:    variant,
	}
	if h.PageType == format.PageTypeIndex {
		ih, err := ParseIndexHeader(p)
		if err != nil {
			return Descriptor{}, err
		}
		id := ih.IndexID
		d.IndexID = &id
	}
	return d, nil
}
