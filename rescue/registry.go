// registry.go - Key-to-stream table, scoped to one run
package rescue

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Registry owns every output stream of a run. Streams are created on first
// use of their key and stay open until Close; a key once seen persists for
// the remainder of the run. The registry is safe for concurrent appenders:
// stream creation is insert-if-absent under the registry lock, and each
// append holds only that stream's lock for the duration of one page write.
type Registry struct {
	dir string

	mu      sync.Mutex
	streams map[Key]*stream
}

type stream struct {
	mu    sync.Mutex
	path  string
	f     *os.File
	size  int64
	pages uint64
	err   error // first failure; the stream is dead afterwards
}

// NewRegistry creates the mode subdirectory under root and returns an
// empty registry writing into it.
func NewRegistry(root string, mode Mode) (*Registry, error) {
	dir := filepath.Join(root, mode.Subdir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", dir)
	}
	return &Registry{dir: dir, streams: make(map[Key]*stream)}, nil
}

func (r *Registry) get(k Key, mode Mode) *stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streams[k]
	if !ok {
		s = &stream{path: filepath.Join(r.dir, mode.FileName(k))}
		r.streams[k] = s
	}
	return s
}

// Append writes one complete raw page to the stream for k, opening it on
// first use. A stream that has failed stays failed: the error is returned
// for accounting and the page is dropped, but other keys are unaffected.
func (r *Registry) Append(k Key, mode Mode, raw []byte) error {
	s := r.get(k, mode)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.f == nil {
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			s.err = errors.Wrapf(err, "open %s", s.path)
			return s.err
		}
		s.f = f
	}
	n, err := s.f.Write(raw)
	if err != nil || n != len(raw) {
		if err == nil {
			err = errors.Errorf("short write: %d of %d", n, len(raw))
		}
		s.err = errors.Wrapf(err, "append to %s", s.path)
		// Drop any partial page so the file stays a whole-page sequence.
		_ = s.f.Truncate(s.size)
		return s.err
	}
	s.size += int64(n)
	s.pages++
	return nil
}

// Counts returns the number of pages appended per key.
func (r *Registry) Counts() map[Key]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Key]uint64, len(r.streams))
	for k, s := range r.streams {
		s.mu.Lock()
		out[k] = s.pages
		s.mu.Unlock()
	}
	return out
}

// Failures returns the first error per failed key.
func (r *Registry) Failures() map[Key]error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Key]error)
	for k, s := range r.streams {
		s.mu.Lock()
		if s.err != nil {
			out[k] = s.err
		}
		s.mu.Unlock()
	}
	return out
}

// Close flushes and closes every stream. It is called exactly once, after
// all appends have finished.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for _, s := range r.streams {
		s.mu.Lock()
		if s.f != nil {
			if err := s.f.Sync(); err != nil && s.err == nil {
				s.err = err
			}
			if err := s.f.Close(); err != nil && first == nil {
				first = err
			}
			s.f = nil
		}
		s.mu.Unlock()
	}
	return first
}
