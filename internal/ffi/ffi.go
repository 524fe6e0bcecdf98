// Package ffi resolves the unqlite shared library at runtime and exposes
// its utility symbols as Go functions. Loading is lazy so that importing
// the bindings does not require the library to be present; it is only
// needed once an engine is actually opened.
package ffi

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// Env var overriding the shared library location.
const libraryEnv = "UNQLITE_LIBRARY"

// Function pointers registered from the shared library.
// Note: all pointer parameters cross as uintptr because purego on ARM64
// doesn't support slices; callers convert with unsafe.Pointer and keep the
// backing memory alive for the duration of the call.
var (
	DBOpen  func(ppDB uintptr, filename string, mode uint32) int32
	DBClose func(pDB uintptr) int32

	UtilRandomString func(pDB uintptr, zBuf uintptr, bufSize uint32) int32
	UtilRandomNum    func(pDB uintptr) uint32

	UtilLoadMmapedFile    func(filename string, ppMap uintptr, pFileSize uintptr) int32
	UtilReleaseMmapedFile func(pMap uintptr, fileSize int64) int32
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load resolves the shared library and registers every symbol. Safe to call
// from multiple goroutines; only the first call does work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load()
	})
	return loadErr
}

func load() error {
	path := libraryPath()
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("unqlite: load shared library %q: %w", path, err)
	}

	purego.RegisterLibFunc(&DBOpen, lib, "unqlite_open")
	purego.RegisterLibFunc(&DBClose, lib, "unqlite_close")
	purego.RegisterLibFunc(&UtilRandomString, lib, "unqlite_util_random_string")
	purego.RegisterLibFunc(&UtilRandomNum, lib, "unqlite_util_random_num")
	purego.RegisterLibFunc(&UtilLoadMmapedFile, lib, "unqlite_util_load_mmaped_file")
	purego.RegisterLibFunc(&UtilReleaseMmapedFile, lib, "unqlite_util_release_mmaped_file")
	return nil
}

func libraryPath() string {
	if p := os.Getenv(libraryEnv); p != "" {
		return p
	}
	if runtime.GOOS == "darwin" {
		return "libunqlite.dylib"
	}
	return "libunqlite.so"
}
