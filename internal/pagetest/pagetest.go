// Package pagetest builds checksum-valid InnoDB pages in memory so tests
// do not depend on fixture files.
package pagetest

import (
	"encoding/binary"

	"github.com/wilhasse/go-ibdrescue/checksum"
	"github.com/wilhasse/go-ibdrescue/format"
)

// Spec describes one synthetic page. Zero values mean: default page size,
// crc32c checksum, level 0.
type Spec struct {
	PageSize int
	Type     format.PageType
	SpaceID  uint32
	PageNo   uint32
	LSN      uint64
	IndexID  uint64
	Level    uint16
	Variant  checksum.Variant
}

// Build returns a full page whose header, trailer and checksum fields are
// consistent, with a deterministic pseudo-random body.
func Build(s Spec) []byte {
	if s.PageSize == 0 {
		s.PageSize = format.DefaultPageSize
	}
	if s.Variant == checksum.VariantNone {
		s.Variant = checksum.VariantCRC32C
	}

	p := make([]byte, s.PageSize)
	be := binary.BigEndian
	be.PutUint32(p[4:], s.PageNo)
	be.PutUint32(p[8:], 0xFFFFFFFF)  // no prev
	be.PutUint32(p[12:], 0xFFFFFFFF) // no next
	be.PutUint64(p[16:], s.LSN)
	be.PutUint16(p[24:], uint16(s.Type))
	be.PutUint32(p[34:], s.SpaceID)

	fillBody(p, uint64(s.PageNo)<<32|uint64(s.SpaceID)|1)

	if s.Type == format.PageTypeIndex {
		off := format.FilHeaderSize
		be.PutUint16(p[off+4:], 0x8000) // compact format flag
		be.PutUint16(p[off+26:], s.Level)
		be.PutUint64(p[off+format.IndexHeaderIDOff:], s.IndexID)
	}

	be.PutUint32(p[s.PageSize-4:], uint32(s.LSN))
	Seal(p, s.Variant)
	return p
}

// Seal recomputes and stores the checksum fields for the given variant.
// Call after mutating page content in a test.
func Seal(p []byte, v checksum.Variant) {
	be := binary.BigEndian
	switch v {
	case checksum.VariantInnoDB:
		be.PutUint32(p[0:], checksum.InnoDB(p))
		// Legacy trailer folds the first 26 header bytes, including the
		// freshly written header checksum.
		be.PutUint32(p[len(p)-8:], checksum.InnoDBTrailer(p))
	case checksum.VariantMagic:
		be.PutUint32(p[0:], 0xDEADBEEF)
		be.PutUint32(p[len(p)-8:], 0xDEADBEEF)
	default:
		c := checksum.CRC32C(p)
		be.PutUint32(p[0:], c)
		be.PutUint32(p[len(p)-8:], c)
	}
}

// Garbage returns a page-sized block of deterministic noise that no
// checksum variant accepts.
func Garbage(pageSize int, seed uint64) []byte {
	p := make([]byte, pageSize)
	fillBody(p, seed|1)
	// Make sure the type code is outside the known set so the block
	// cannot masquerade as an empty or torn page.
	binary.BigEndian.PutUint16(p[24:], 0x7777)
	return p
}

// CorruptBody flips one body byte, outside every checksum field, leaving
// the header and trailer structurally intact.
func CorruptBody(p []byte) {
	p[format.FilHeaderSize+100] ^= 0x01
}

// fillBody overwrites the non-header, non-trailer range with xorshift
// noise.
func fillBody(p []byte, seed uint64) {
	x := seed
	for i := format.FilHeaderSize; i < len(p)-format.FilTrailerSize; i++ {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		p[i] = byte(x)
	}
}
