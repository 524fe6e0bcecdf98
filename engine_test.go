//go:build unix

package unqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unqlite "github.com/rumpl/unqlite-go"
	"github.com/rumpl/unqlite-go/internal/testengine"
)

func TestEngineLifecycle(t *testing.T) {
	eng := testengine.New()

	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(eng))
	require.NoError(t, err)
	assert.Equal(t, 1, eng.OpenHandles())

	require.NoError(t, db.Close())
	assert.Equal(t, 0, eng.OpenHandles())

	// Close is idempotent; the second call never reaches the engine.
	assert.NoError(t, db.Close())
	assert.Equal(t, 0, eng.OpenHandles())
}

func TestEngineOpenFile(t *testing.T) {
	eng := testengine.New()

	db, err := unqlite.Open(t.TempDir()+"/test.db", unqlite.WithLibrary(eng))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, eng.OpenHandles())
}

func TestEngineOpenNulPath(t *testing.T) {
	eng := testengine.New()

	db, err := unqlite.Open("bad\x00path.db", unqlite.WithLibrary(eng))
	assert.ErrorIs(t, err, unqlite.ErrNulByteInPath)
	assert.Nil(t, db)
	assert.Equal(t, 0, eng.OpenHandles())
}

func TestEngineUseAfterClose(t *testing.T) {
	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(testengine.New()))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.RandomString(8)
	assert.ErrorIs(t, err, unqlite.ErrClosed)
	assert.Equal(t, uint32(0), db.RandomNum())
}
