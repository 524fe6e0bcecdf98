package unqlite

import (
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/rumpl/unqlite-go/pkg/log"
)

// Mmap is an engine-hosted memory-mapped view of a file. The region was
// mapped by the engine and only the engine knows how to unmap it; the Mmap
// value is the sole authority that triggers that unmap, exactly once.
//
// Release the region with Close, typically deferred so it runs on every
// exit path. An Mmap must not be copied; hand the pointer over instead.
type Mmap struct {
	lib  Library
	addr uintptr
	size int64

	released atomic.Bool
}

// LoadMmapedFile asks the engine to map the file at path into memory so it
// can later be stored into the database.
//
// Experimental: the underlying engine call is documented as unreliable or
// unimplemented in at least one engine version. It is disabled unless the
// Engine was opened with WithExperimentalMmap, and fails with
// ErrMmapDisabled otherwise.
func (e *Engine) LoadMmapedFile(path string) (*Mmap, error) {
	if !e.mmapEnabled {
		return nil, ErrMmapDisabled
	}
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if strings.IndexByte(path, 0) >= 0 {
		return nil, ErrNulByteInPath
	}

	addr, size, st := e.lib.MapFile(path)
	if err := wrap("unqlite_util_load_mmaped_file", st); err != nil {
		return nil, err
	}
	log.Util.Debug().Str("path", path).Int64("size", size).Msg("file mapped")
	return &Mmap{lib: e.lib, addr: addr, size: size}, nil
}

// Size returns the engine-reported size of the mapped region in bytes.
func (m *Mmap) Size() int64 {
	return m.size
}

// Bytes returns a read-only view of the mapped region. The view is valid
// only while the region is still mapped; it returns nil once Close has been
// called, or for an empty region.
func (m *Mmap) Bytes() []byte {
	if m.released.Load() || m.size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(m.addr)), m.size)
}

// Close releases the mapped region. It is idempotent: only the first call
// reaches the engine, every later call is a no-op returning nil. A failed
// release is logged and returned, but the region still counts as released
// and is never handed to the engine twice.
func (m *Mmap) Close() error {
	if !m.released.CompareAndSwap(false, true) {
		return nil
	}
	err := wrap("unqlite_util_release_mmaped_file", m.lib.UnmapFile(m.addr, m.size))
	if err != nil {
		log.Util.Warn().Err(err).Int64("size", m.size).Msg("mmap release failed")
		return err
	}
	return nil
}
