//go:build unix

// Package testengine is an in-process implementation of the native call
// surface, so the test suite runs without the unqlite shared library. It
// reproduces the observable contracts the bindings rely on: random fills
// are English alphabet bytes, MapFile returns a real mapped address for the
// file's contents, and every call is counted so tests can assert which
// native calls were (or were never) made.
package testengine

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	unqlite "github.com/rumpl/unqlite-go"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Engine implements unqlite.Library in process.
//
// The zero value is not usable; call New.
type Engine struct {
	mu       sync.Mutex
	next     uintptr
	handles  map[unqlite.Handle]string
	mappings map[uintptr][]byte

	// Status overrides for failure injection. Zero means UNQLITE_OK.
	RandomStatus unqlite.Status
	MapStatus    unqlite.Status
	UnmapStatus  unqlite.Status

	// Per-call counters.
	MapCalls   int
	UnmapCalls int
}

func New() *Engine {
	return &Engine{
		handles:  make(map[unqlite.Handle]string),
		mappings: make(map[uintptr][]byte),
	}
}

func (e *Engine) Open(path string, mode uint32) (unqlite.Handle, unqlite.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	h := unqlite.Handle(e.next)
	e.handles[h] = path
	return h, unqlite.StatusOK
}

func (e *Engine) Close(h unqlite.Handle) unqlite.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.handles[h]; !ok {
		return unqlite.StatusInvalid
	}
	delete(e.handles, h)
	return unqlite.StatusOK
}

func (e *Engine) FillRandomBytes(h unqlite.Handle, buf []byte) unqlite.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.handles[h]; !ok {
		return unqlite.StatusInvalid
	}
	if e.RandomStatus != unqlite.StatusOK {
		return e.RandomStatus
	}
	if _, err := rand.Read(buf); err != nil {
		return unqlite.StatusUnknown
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return unqlite.StatusOK
}

func (e *Engine) RandomValue(h unqlite.Handle) uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (e *Engine) MapFile(path string) (uintptr, int64, unqlite.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.MapCalls++
	if e.MapStatus != unqlite.StatusOK {
		return 0, 0, e.MapStatus
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, unqlite.StatusIOErr
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, unqlite.StatusIOErr
	}
	size := info.Size()
	if size == 0 {
		return 0, 0, unqlite.StatusOK
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return 0, 0, unqlite.StatusIOErr
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	e.mappings[addr] = data
	return addr, size, unqlite.StatusOK
}

func (e *Engine) UnmapFile(addr uintptr, size int64) unqlite.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.UnmapCalls++
	if e.UnmapStatus != unqlite.StatusOK {
		return e.UnmapStatus
	}
	if addr == 0 && size == 0 {
		return unqlite.StatusOK
	}
	data, ok := e.mappings[addr]
	if !ok {
		return unqlite.StatusInvalid
	}
	delete(e.mappings, addr)
	if err := unix.Munmap(data); err != nil {
		return unqlite.StatusIOErr
	}
	return unqlite.StatusOK
}

// ActiveMappings reports how many regions are currently mapped. Tests use
// it to prove a release reached the engine exactly once.
func (e *Engine) ActiveMappings() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.mappings)
}

// OpenHandles reports how many handles have not been closed yet.
func (e *Engine) OpenHandles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handles)
}
