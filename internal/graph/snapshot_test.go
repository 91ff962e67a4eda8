package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", SnapshotFile)

	require.NoError(t, SaveSnapshot(testSnapshot(), path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)

	// A store built from the reloaded snapshot serves the same graph.
	ix := BuildIndex(NewStore(loaded))
	p, err := ix.Resolver().ResolveOne("David")
	require.NoError(t, err)
	assert.Equal(t, "david", p.ID)
	assert.Equal(t, []string{"jesse"}, ix.Parents("david"))
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSnapshotMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("people: [this is: not valid yaml"), 0o644))

	_, err := LoadSnapshot(path)
	assert.Error(t, err)
}
