// stats.go - Run statistics and progress events
package rescue

import "github.com/wilhasse/go-ibdrescue/scan"

// Stats summarizes a recovery run. Partial success is the expected common
// case on damaged input, so the run always completes with a summary rather
// than aborting on bad ranges.
type Stats struct {
	PageSize   int
	TotalBytes int64

	Candidates uint64
	Validated  uint64
	Rejected   map[scan.Reason]uint64

	// BytesUnreadable counts input that could not be read and was
	// skipped page by page.
	BytesUnreadable int64

	// OffsetMismatches counts validated pages whose stored page number
	// disagrees with their source offset (relocated or copied pages).
	OffsetMismatches uint64

	// PerKey is the number of pages routed to each output key, including
	// in dry runs.
	PerKey map[Key]uint64

	// KeyErrors holds the first write failure per key; those keys stopped
	// accumulating pages but the run carried on.
	KeyErrors map[Key]error

	Cancelled bool
}

func newStats(pageSize int, totalBytes int64) *Stats {
	return &Stats{
		PageSize:   pageSize,
		TotalBytes: totalBytes,
		Rejected:   make(map[scan.Reason]uint64),
		PerKey:     make(map[Key]uint64),
		KeyErrors:  make(map[Key]error),
	}
}

// RejectedTotal sums rejections across all reasons.
func (s *Stats) RejectedTotal() uint64 {
	var n uint64
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Progress is a structured progress event emitted while scanning. The core
// reports data; rendering belongs to the caller.
type Progress struct {
	BytesScanned int64
	TotalBytes   int64
	Validated    uint64
	Rejected     uint64
}
