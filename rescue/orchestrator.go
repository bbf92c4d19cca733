// orchestrator.go - Concurrent scan driving the full recovery pipeline
package rescue

import (
	"context"
	"io"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wilhasse/go-ibdrescue/format"
	"github.com/wilhasse/go-ibdrescue/scan"
)

// defaultChunkSize bounds both worker granularity and how much validated
// page data can sit buffered per in-flight chunk.
const defaultChunkSize = 16 * 1024 * 1024

// Options configures one recovery run. Values arrive already validated
// from the caller (typically a CLI); the core does not parse or display
// them.
type Options struct {
	Mode      Mode
	OutputDir string
	// PageSize overrides probing when non-zero.
	PageSize int
	// Workers is the concurrency degree; <=0 means one per CPU.
	Workers int
	// ChunkSize is the scan partition size in bytes; 0 picks a default.
	ChunkSize int64
	// DryRun classifies and counts without writing output files.
	DryRun bool
	// Progress, when set, receives a structured event after each chunk.
	Progress func(Progress)
	Log      logrus.FieldLogger
}

type keyedPage struct {
	key  Key
	data []byte
}

type delta struct {
	candidates       uint64
	validated        uint64
	offsetMismatches uint64
	bytesUnreadable  int64
	rejected         map[scan.Reason]uint64
}

type chunkResult struct {
	chunk scan.Chunk
	pages []keyedPage
	delta delta
}

// Run scans [0, size) of r for valid pages and routes them into per-key
// output files under opts.OutputDir. The input is statically partitioned
// into page-aligned chunks handed to a fixed worker pool; chunk results
// are applied strictly in chunk order, so each key's file holds its pages
// in source-offset order regardless of worker count.
//
// Cancellation via ctx is not an error: dispatch stops, in-flight appends
// finish whole, streams are flushed and closed, and partial statistics are
// returned with Cancelled set. Run fails only on setup problems (unknown
// page size, unusable output directory).
func Run(ctx context.Context, r io.ReaderAt, size int64, opts Options) (*Stats, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		ps, err := scan.ProbePageSize(r, size)
		if err != nil {
			return nil, err
		}
		pageSize = ps
		log.WithField("page_size", pageSize).Info("probed page size")
	} else if !format.ValidPageSize(pageSize) {
		return nil, errors.Errorf("unsupported page size %d", pageSize)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	var reg *Registry
	if !opts.DryRun {
		var err error
		reg, err = NewRegistry(opts.OutputDir, opts.Mode)
		if err != nil {
			return nil, err
		}
	}

	chunks := scan.Partition(size, chunkSize, pageSize)
	stats := newStats(pageSize, size)

	results := make(chan chunkResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			// Static assignment: worker w owns chunks w, w+N, w+2N...
			for i := w; i < len(chunks); i += workers {
				results <- scanChunk(gctx, r, chunks[i], pageSize, opts.Mode, log)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Sequencer: every chunk reports exactly once (possibly empty when
	// cancelled), so applying in ascending index order never stalls.
	pending := make(map[int]chunkResult)
	applied := 0
	var bytesScanned int64
	for res := range results {
		pending[res.chunk.Index] = res
		for {
			next, ok := pending[applied]
			if !ok {
				break
			}
			delete(pending, applied)
			applied++
			apply(stats, next, reg, opts.Mode, log)
			bytesScanned += next.chunk.End - next.chunk.Start
			if opts.Progress != nil {
				opts.Progress(Progress{
					BytesScanned: bytesScanned,
					TotalBytes:   size,
					Validated:    stats.Validated,
					Rejected:     stats.RejectedTotal(),
				})
			}
		}
	}

	if reg != nil {
		if err := reg.Close(); err != nil {
			log.WithError(err).Warn("closing output streams")
		}
		for k, err := range reg.Failures() {
			stats.KeyErrors[k] = err
		}
	}
	if ctx.Err() != nil {
		stats.Cancelled = true
	}
	return stats, nil
}

func scanChunk(ctx context.Context, r io.ReaderAt, c scan.Chunk, pageSize int, mode Mode, log logrus.FieldLogger) chunkResult {
	res := chunkResult{
		chunk: c,
		delta: delta{rejected: make(map[scan.Reason]uint64)},
	}
	sc := scan.NewScanner(r, pageSize, c.Start, c.End)
	for ctx.Err() == nil {
		b, err := sc.Next()
		if err == io.EOF {
			break
		}
		res.delta.candidates++
		if err != nil {
			// One bad sector costs one page; keep scanning the chunk.
			res.delta.rejected[scan.ReasonReadError]++
			res.delta.bytesUnreadable += int64(pageSize)
			log.WithError(err).Warn("skipping unreadable page")
			continue
		}
		out := scan.Classify(b)
		if !out.Valid {
			res.delta.rejected[out.Reason]++
			continue
		}
		res.delta.validated++
		if !out.OffsetConsistent {
			res.delta.offsetMismatches++
		}
		key, ok := mode.KeyFor(out.Desc)
		if !ok {
			continue
		}
		data := make([]byte, len(b.Data))
		copy(data, b.Data)
		res.pages = append(res.pages, keyedPage{key: key, data: data})
	}
	return res
}

func apply(stats *Stats, res chunkResult, reg *Registry, mode Mode, log logrus.FieldLogger) {
	d := res.delta
	stats.Candidates += d.candidates
	stats.Validated += d.validated
	stats.OffsetMismatches += d.offsetMismatches
	stats.BytesUnreadable += d.bytesUnreadable
	for reason, n := range d.rejected {
		stats.Rejected[reason] += n
	}
	for _, p := range res.pages {
		if reg == nil {
			stats.PerKey[p.key]++
			continue
		}
		if err := reg.Append(p.key, mode, p.data); err != nil {
			// Fatal for this key only; reported via KeyErrors at the end.
			log.WithError(err).WithField("key", p.key).Debug("dropping page for failed stream")
			continue
		}
		stats.PerKey[p.key]++
	}
}
