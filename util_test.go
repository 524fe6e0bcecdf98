//go:build unix

package unqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unqlite "github.com/rumpl/unqlite-go"
	"github.com/rumpl/unqlite-go/internal/testengine"
)

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func TestRandomString(t *testing.T) {
	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(testengine.New()))
	require.NoError(t, err)
	defer db.Close()

	for _, length := range []uint32{0, 1, 32, 4096} {
		s, err := db.RandomString(length)
		require.NoError(t, err)
		require.Len(t, s, int(length))
		for i, b := range s {
			require.Truef(t, isASCIILetter(b), "byte %d is %q, not an ASCII letter", i, b)
		}
	}
}

func TestRandomStringEngineFailure(t *testing.T) {
	eng := testengine.New()
	eng.RandomStatus = unqlite.StatusAbort

	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(eng))
	require.NoError(t, err)
	defer db.Close()

	s, err := db.RandomString(32)

	// The partially written buffer must never be exposed on failure.
	assert.Nil(t, s)
	var engErr *unqlite.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, unqlite.StatusAbort, engErr.Code)
}

func TestRandomNum(t *testing.T) {
	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(testengine.New()))
	require.NoError(t, err)
	defer db.Close()

	// Two successive values carry no uniqueness guarantee; the call just
	// has to succeed and fit uint32, which the signature enforces.
	_ = db.RandomNum()
	_ = db.RandomNum()
}
