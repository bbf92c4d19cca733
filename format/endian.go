// endian.go - Big-endian byte reading utilities
package format

import "encoding/binary"

// All multi-byte fields in a page are big-endian. Callers validate the
// slice length once per page, so these omit per-read bounds errors.

func Be16(b []byte, off int) uint16 { return binary.BigEndian.Uint16(b[off : off+2]) }
func Be32(b []byte, off int) uint32 { return binary.BigEndian.Uint32(b[off : off+4]) }
func Be64(b []byte, off int) uint64 { return binary.BigEndian.Uint64(b[off : off+8]) }
