// Package ibdrescue recovers InnoDB pages from damaged, deleted or
// partially overwritten storage by scanning raw bytes for valid page
// signatures and regrouping what it finds.
//
// The library is organized into focused packages:
//
// Core Types and Constants:
//   - format: page sizes, FIL offsets, page type codes, endian helpers
//
// Page Structure Components:
//   - page: FIL header/trailer parsing, page descriptors, index header
//   - checksum: historical page checksum variants (crc32c, legacy fold)
//
// Scanning:
//   - scan: page size probing, chunked page-aligned scanning, the
//     classify/validate pipeline
//
// Recovery:
//   - rescue: output routing by index id or space id, the concurrent
//     extraction orchestrator, tablespace image rebuilding
//
// Basic usage:
//
//	f, _ := os.Open("disk.img")
//	defer f.Close()
//	info, _ := f.Stat()
//
//	stats, err := ibdrescue.Run(ctx, f, info.Size(), ibdrescue.Options{
//	    Mode:      ibdrescue.ModeIndex,
//	    OutputDir: "recovered",
//	})
//
// Every validated page lands, byte for byte, in one output file per
// discovered index id (or space id in tablespace mode), in source-offset
// order. Damaged ranges are skipped and counted, never fatal.
package ibdrescue
