package unqlite

import (
	"strings"
	"sync/atomic"

	"github.com/rumpl/unqlite-go/pkg/log"
)

// memoryDB is the engine's reserved name for a transient in-memory database.
const memoryDB = ":mem:"

// Engine owns a live handle to an opened engine instance. All operations on
// a given Engine assume at most one outstanding native call per handle; this
// package adds no locking of its own and defers to the engine's concurrency
// contract.
type Engine struct {
	lib    Library
	handle Handle
	path   string

	mmapEnabled bool
	closed      atomic.Bool
}

type config struct {
	lib         Library
	mmapEnabled bool
}

// Option configures an Engine at open time.
type Option func(*config)

// WithLibrary substitutes the native call surface. Intended for tests that
// run against an in-process engine instead of the shared library.
func WithLibrary(lib Library) Option {
	return func(c *config) { c.lib = lib }
}

// WithExperimentalMmap enables LoadMmapedFile. The underlying engine call is
// known to be unreliable or unimplemented in some engine versions, so it has
// to be opted into explicitly.
func WithExperimentalMmap() Option {
	return func(c *config) { c.mmapEnabled = true }
}

// Open opens (creating if necessary) the database file at path and returns
// an Engine owning the resulting handle.
func Open(path string, opts ...Option) (*Engine, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lib == nil {
		lib, err := loadNativeLibrary()
		if err != nil {
			return nil, err
		}
		cfg.lib = lib
	}
	if strings.IndexByte(path, 0) >= 0 {
		return nil, ErrNulByteInPath
	}

	h, st := cfg.lib.Open(path, openCreate|openReadWrite)
	if err := wrap("unqlite_open", st); err != nil {
		return nil, err
	}
	log.Engine.Debug().Str("path", path).Msg("engine opened")
	return &Engine{
		lib:         cfg.lib,
		handle:      h,
		path:        path,
		mmapEnabled: cfg.mmapEnabled,
	}, nil
}

// CreateInMemory opens a private, transient in-memory database.
func CreateInMemory(opts ...Option) (*Engine, error) {
	return Open(memoryDB, opts...)
}

// Close releases the engine handle. Safe to call more than once; only the
// first call reaches the engine.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := wrap("unqlite_close", e.lib.Close(e.handle))
	if err != nil {
		log.Engine.Warn().Err(err).Str("path", e.path).Msg("engine close failed")
		return err
	}
	log.Engine.Debug().Str("path", e.path).Msg("engine closed")
	return nil
}
