// Package unqlite provides Go bindings for the UnQLite embedded
// document/key-value engine. The shared library is loaded at runtime with
// purego, so the package builds without cgo; the library only needs to be
// present (see the UNQLITE_LIBRARY environment variable) when an engine is
// actually opened.
//
// The package covers the engine's utility surface: status code adaptation,
// the engine PRNG (RandomString, RandomNum) and the experimental
// engine-hosted memory-mapped file loader (LoadMmapedFile). Resources handed
// across the native boundary follow a strict ownership protocol: buffers are
// allocated host-side and only exposed once the engine reports success, and
// a mapped region is released exactly once no matter how its owning scope
// exits.
//
//	db, err := unqlite.CreateInMemory()
//	if err != nil {
//		// ...
//	}
//	defer db.Close()
//
//	s, err := db.RandomString(32)
package unqlite
