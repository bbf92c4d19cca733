// checksum.go - Historical InnoDB page checksum variants
//
// The engine changed its checksum algorithm across versions while keeping
// the on-disk field layout stable: a u32 at byte 0 of the FIL header and a
// u32 at byte 0 of the FIL trailer. Every variant covers the same two byte
// ranges, which exclude the checksum fields themselves, the flush LSN and
// the space id of the header, and the whole trailer.
package checksum

import (
	"hash/crc32"

	"github.com/wilhasse/go-ibdrescue/format"
)

// Variant identifies the checksum algorithm a page was written with.
type Variant uint8

const (
	// VariantNone means no variant matched.
	VariantNone Variant = iota
	// VariantCRC32C is the modern crc32c checksum (MySQL 5.6+ default).
	VariantCRC32C
	// VariantInnoDB is the legacy ut_fold based checksum.
	VariantInnoDB
	// VariantMagic is innodb_checksum_algorithm=none, which stamps a
	// fixed magic value into both checksum fields.
	VariantMagic
)

func (v Variant) String() string {
	switch v {
	case VariantCRC32C:
		return "crc32c"
	case VariantInnoDB:
		return "innodb"
	case VariantMagic:
		return "magic"
	}
	return "none"
}

// ut_hash random masks, unchanged since the earliest engine versions.
const (
	hashRandomMask  uint32 = 1463735687
	hashRandomMask2 uint32 = 1653893711
)

// noChecksumMagic is written to both fields when checksums are disabled.
const noChecksumMagic uint32 = 0xDEADBEEF

// Checksummed header range is [4, 26): page number, prev, next, LSN and
// page type. Body range is [38, pageSize-8).
const (
	hdrPartialOff = 4
	hdrPartialEnd = 26
	bodyOff       = format.FilHeaderSize
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func foldPair(n1, n2 uint32) uint32 {
	return ((((n1 ^ n2 ^ hashRandomMask2) << 8) + n1) ^ hashRandomMask) + n2
}

func foldBytes(b []byte) uint32 {
	var fold uint32
	for _, c := range b {
		fold = foldPair(fold, uint32(c))
	}
	return fold
}

// CRC32C computes the modern page checksum: crc32c over the partial header
// xor crc32c over the body.
func CRC32C(page []byte) uint32 {
	body := page[bodyOff : len(page)-format.FilTrailerSize]
	return crc32.Checksum(page[hdrPartialOff:hdrPartialEnd], castagnoli) ^
		crc32.Checksum(body, castagnoli)
}

// InnoDB computes the legacy header checksum: ut_fold over the partial
// header plus ut_fold over the body.
func InnoDB(page []byte) uint32 {
	body := page[bodyOff : len(page)-format.FilTrailerSize]
	return foldBytes(page[hdrPartialOff:hdrPartialEnd]) + foldBytes(body)
}

// InnoDBTrailer computes the legacy trailer checksum: ut_fold over the
// first 26 header bytes.
func InnoDBTrailer(page []byte) uint32 {
	return foldBytes(page[:hdrPartialEnd])
}

// verifiers are tried in priority order: modern files dominate recovery
// inputs, so crc32c goes first. Adding an engine variant means appending
// one entry. The stored header field is decisive; trailer contents feed
// the structural LSN check done by the caller.
var verifiers = []struct {
	variant Variant
	match   func(page []byte, header, trailer uint32) bool
}{
	{VariantCRC32C, func(page []byte, header, _ uint32) bool {
		return header == CRC32C(page)
	}},
	{VariantInnoDB, func(page []byte, header, _ uint32) bool {
		return header == InnoDB(page)
	}},
	{VariantMagic, func(_ []byte, header, trailer uint32) bool {
		return header == noChecksumMagic && trailer == noChecksumMagic
	}},
}

// Verify tries every known variant against the stored header and trailer
// checksum fields and returns the first that matches, or VariantNone.
// len(page) must be the full page size.
func Verify(page []byte) Variant {
	header := format.Be32(page, 0)
	trailer := format.Be32(page, len(page)-format.FilTrailerSize)
	for _, v := range verifiers {
		if v.match(page, header, trailer) {
			return v.variant
		}
	}
	return VariantNone
}
