//go:build unix

package unqlite_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unqlite "github.com/rumpl/unqlite-go"
	"github.com/rumpl/unqlite-go/internal/testengine"
)

func newMmapEngine(t *testing.T) (*testengine.Engine, *unqlite.Engine) {
	t.Helper()

	eng := testengine.New()
	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(eng), unqlite.WithExperimentalMmap())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return eng, db
}

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapped.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoadMmapedFile(t *testing.T) {
	eng, db := newMmapEngine(t)

	content := []byte("Hello, world!")
	path := writeTempFile(t, content)

	m, err := db.LoadMmapedFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), m.Size())
	assert.Equal(t, content, m.Bytes())

	require.NoError(t, m.Close())
	assert.Equal(t, 0, eng.ActiveMappings())
	assert.Nil(t, m.Bytes())

	// Explicit release followed by the deferred one must stay a no-op.
	assert.NoError(t, m.Close())
	assert.Equal(t, 1, eng.UnmapCalls)
}

func TestLoadMmapedFileEmpty(t *testing.T) {
	eng, db := newMmapEngine(t)

	m, err := db.LoadMmapedFile(writeTempFile(t, nil))
	require.NoError(t, err)

	assert.Equal(t, int64(0), m.Size())
	assert.Nil(t, m.Bytes())
	assert.NoError(t, m.Close())
	assert.Equal(t, 0, eng.ActiveMappings())
}

func TestLoadMmapedFileNonexistent(t *testing.T) {
	_, db := newMmapEngine(t)

	m, err := db.LoadMmapedFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Nil(t, m)

	var engErr *unqlite.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, unqlite.StatusIOErr, engErr.Code)
}

func TestLoadMmapedFileNulPath(t *testing.T) {
	eng, db := newMmapEngine(t)

	m, err := db.LoadMmapedFile("bad\x00path")
	assert.ErrorIs(t, err, unqlite.ErrNulByteInPath)
	assert.Nil(t, m)

	// The path is rejected before any native call.
	assert.Equal(t, 0, eng.MapCalls)
}

func TestLoadMmapedFileDisabled(t *testing.T) {
	eng := testengine.New()
	db, err := unqlite.CreateInMemory(unqlite.WithLibrary(eng))
	require.NoError(t, err)
	defer db.Close()

	m, err := db.LoadMmapedFile(writeTempFile(t, []byte("x")))
	assert.ErrorIs(t, err, unqlite.ErrMmapDisabled)
	assert.Nil(t, m)
	assert.Equal(t, 0, eng.MapCalls)
}

func TestMmapReleaseFailure(t *testing.T) {
	eng, db := newMmapEngine(t)

	m, err := db.LoadMmapedFile(writeTempFile(t, []byte("Hello, world!")))
	require.NoError(t, err)

	eng.UnmapStatus = unqlite.StatusNotImplemented

	// The failure surfaces, but the resource still transitions to released:
	// a retry is a no-op and the engine never sees a second unmap.
	var engErr *unqlite.EngineError
	require.ErrorAs(t, m.Close(), &engErr)
	assert.Equal(t, unqlite.StatusNotImplemented, engErr.Code)

	assert.NoError(t, m.Close())
	assert.Equal(t, 1, eng.UnmapCalls)
}
