// format.go - On-disk constants for InnoDB pages
package format

import "fmt"

// Sizes and fixed offsets within a page. The FIL header and trailer keep
// the same layout at every supported page size; only the trailer's position
// moves (always the last 8 bytes of the page).
const (
	FilHeaderSize  = 38
	FilTrailerSize = 8

	// Index (page) header sits immediately after the FIL header on
	// INDEX pages; the index id is the u64 at byte 28 of that header.
	IndexHeaderSize   = 36
	IndexHeaderIDOff  = 28
	DefaultPageSize   = 16 * 1024
	MinPageSize       = 4 * 1024
	MaxPageSize       = 64 * 1024
	ChecksumFieldSize = 4
)

// PageSizes lists every page size the storage engine can have been
// configured with, in probing order.
var PageSizes = []int{4096, 8192, 16384, 65536}

// ValidPageSize reports whether n is a supported page size.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// PageType is the raw FIL_PAGE_TYPE code. Codes not in the known set are
// carried as-is so future engine versions round-trip instead of failing.
type PageType uint16

const (
	PageTypeAllocated     PageType = 0
	PageTypeUndoLog       PageType = 2
	PageTypeInode         PageType = 3
	PageTypeIbufFreeList  PageType = 4
	PageTypeIbufBitmap    PageType = 5
	PageTypeSys           PageType = 6
	PageTypeTrxSys        PageType = 7
	PageTypeFspHdr        PageType = 8
	PageTypeXdes          PageType = 9
	PageTypeBlob          PageType = 10
	PageTypeZblob         PageType = 11
	PageTypeZblob2        PageType = 12
	PageTypeUnknown       PageType = 13
	PageTypeCompressed    PageType = 14
	PageTypeEncrypted     PageType = 15
	PageTypeCompEncrypted PageType = 16
	PageTypeEncryptRtree  PageType = 17
	PageTypeSdiBlob       PageType = 18
	PageTypeSdiZblob      PageType = 19
	PageTypeLegacyDblwr   PageType = 20
	PageTypeRsegArray     PageType = 21
	PageTypeLobIndex      PageType = 22
	PageTypeLobData       PageType = 23
	PageTypeLobFirst      PageType = 24
	PageTypeZlobFirst     PageType = 25
	PageTypeZlobData      PageType = 26
	PageTypeZlobIndex     PageType = 27
	PageTypeZlobFrag      PageType = 28
	PageTypeZlobFragEntry PageType = 29
	PageTypeSDI           PageType = 17853
	PageTypeRTree         PageType = 17854
	PageTypeIndex         PageType = 17855
)

var pageTypeNames = map[PageType]string{
	PageTypeAllocated:     "ALLOCATED",
	PageTypeUndoLog:       "UNDO_LOG",
	PageTypeInode:         "INODE",
	PageTypeIbufFreeList:  "IBUF_FREE_LIST",
	PageTypeIbufBitmap:    "IBUF_BITMAP",
	PageTypeSys:           "SYS",
	PageTypeTrxSys:        "TRX_SYS",
	PageTypeFspHdr:        "FSP_HDR",
	PageTypeXdes:          "XDES",
	PageTypeBlob:          "BLOB",
	PageTypeZblob:         "ZBLOB",
	PageTypeZblob2:        "ZBLOB2",
	PageTypeUnknown:       "UNKNOWN",
	PageTypeCompressed:    "COMPRESSED",
	PageTypeEncrypted:     "ENCRYPTED",
	PageTypeCompEncrypted: "COMPRESSED_ENCRYPTED",
	PageTypeEncryptRtree:  "ENCRYPTED_RTREE",
	PageTypeSdiBlob:       "SDI_BLOB",
	PageTypeSdiZblob:      "SDI_ZBLOB",
	PageTypeLegacyDblwr:   "LEGACY_DBLWR",
	PageTypeRsegArray:     "RSEG_ARRAY",
	PageTypeLobIndex:      "LOB_INDEX",
	PageTypeLobData:       "LOB_DATA",
	PageTypeLobFirst:      "LOB_FIRST",
	PageTypeZlobFirst:     "ZLOB_FIRST",
	PageTypeZlobData:      "ZLOB_DATA",
	PageTypeZlobIndex:     "ZLOB_INDEX",
	PageTypeZlobFrag:      "ZLOB_FRAG",
	PageTypeZlobFragEntry: "ZLOB_FRAG_ENTRY",
	PageTypeSDI:           "SDI",
	PageTypeRTree:         "RTREE",
	PageTypeIndex:         "INDEX",
}

// Known reports whether t is a page type code this package recognizes.
func (t PageType) Known() bool {
	_, ok := pageTypeNames[t]
	return ok
}

func (t PageType) String() string {
	if name, ok := pageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}
