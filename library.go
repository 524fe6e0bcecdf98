package unqlite

import (
	"runtime"
	"unsafe"

	"github.com/rumpl/unqlite-go/internal/ffi"
)

// Handle is an opaque reference to a live engine instance. It is borrowed
// for the duration of a single native call and never owned by this package's
// callers; it stays valid until the owning Engine is closed.
type Handle uintptr

// Library is the native call surface of the engine shared library. The
// default implementation dispatches through purego; tests substitute an
// in-process implementation via WithLibrary.
//
// Buffer arguments are borrowed for the duration of the call only: an
// implementation receives the buffer's address and must not retain it, and
// the caller must not let the buffer move or be reclaimed while the call is
// outstanding.
type Library interface {
	Open(path string, mode uint32) (Handle, Status)
	Close(h Handle) Status

	// FillRandomBytes populates every byte of buf with a character from
	// the English alphabet using the engine's PRNG.
	FillRandomBytes(h Handle, buf []byte) Status

	// RandomValue produces one value from the engine's PRNG. The native
	// call has no failure mode.
	RandomValue(h Handle) uint32

	// MapFile asks the engine to map the file at path into memory,
	// returning the region's address and signed size.
	MapFile(path string) (addr uintptr, size int64, st Status)

	// UnmapFile releases a region previously returned by MapFile.
	UnmapFile(addr uintptr, size int64) Status
}

// Open modes of the underlying engine.
const (
	openReadWrite uint32 = 0x00000002
	openCreate    uint32 = 0x00000004
)

// nativeLibrary routes every call through the dlopen'd shared library.
type nativeLibrary struct{}

func loadNativeLibrary() (Library, error) {
	if err := ffi.Load(); err != nil {
		return nil, err
	}
	return nativeLibrary{}, nil
}

func (nativeLibrary) Open(path string, mode uint32) (Handle, Status) {
	var h uintptr
	st := ffi.DBOpen(uintptr(unsafe.Pointer(&h)), path, mode)
	runtime.KeepAlive(&h)
	return Handle(h), Status(st)
}

func (nativeLibrary) Close(h Handle) Status {
	return Status(ffi.DBClose(uintptr(h)))
}

func (nativeLibrary) FillRandomBytes(h Handle, buf []byte) Status {
	st := ffi.UtilRandomString(uintptr(h), slicePtr(buf), uint32(len(buf)))
	// Keep the buffer alive until after the native call completes.
	runtime.KeepAlive(buf)
	return Status(st)
}

func (nativeLibrary) RandomValue(h Handle) uint32 {
	return ffi.UtilRandomNum(uintptr(h))
}

func (nativeLibrary) MapFile(path string) (uintptr, int64, Status) {
	var (
		addr uintptr
		size int64
	)
	st := ffi.UtilLoadMmapedFile(path, uintptr(unsafe.Pointer(&addr)), uintptr(unsafe.Pointer(&size)))
	runtime.KeepAlive(&addr)
	runtime.KeepAlive(&size)
	return addr, size, Status(st)
}

func (nativeLibrary) UnmapFile(addr uintptr, size int64) Status {
	return Status(ffi.UtilReleaseMmapedFile(addr, size))
}

// slicePtr returns a pointer to the first element of a byte slice.
// For empty slices, returns a dummy non-null pointer (the engine requires
// a non-null buffer even for a zero length).
func slicePtr(s []byte) uintptr {
	if len(s) == 0 {
		return uintptr(unsafe.Pointer(&struct{}{}))
	}
	return uintptr(unsafe.Pointer(&s[0]))
}
