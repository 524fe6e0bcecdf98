package unqlite

import "math"

// RandomString generates length pseudo-random English alphabet characters
// using the engine's PRNG.
//
// The buffer is allocated host-side with exactly the requested capacity and
// its address is handed to the engine, which writes every byte in place. It
// is returned to the caller only once the engine reports success; on failure
// no buffer is returned. The engine never retains a reference to it.
func (e *Engine) RandomString(length uint32) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if uint64(length) > math.MaxInt {
		return nil, ErrAllocation
	}
	buf := make([]byte, length)
	if err := wrap("unqlite_util_random_string", e.lib.FillRandomBytes(e.handle, buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomNum generates one random number between 0 and 0xFFFFFFFF using the
// engine's PRNG. The native call has no failure mode; calling it on a
// closed engine returns 0.
func (e *Engine) RandomNum() uint32 {
	if e.closed.Load() {
		return 0
	}
	return e.lib.RandomValue(e.handle)
}
