package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renodesk/renodesk/internal/workspace"
)

func TestNewBrowseCmd(t *testing.T) {
	cmd := newBrowseCmd()
	assert.Equal(t, "browse", cmd.Name())
	for _, name := range []string{"data-dir", "workspace", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestBrowseRequiresTerminal(t *testing.T) {
	// Test stdout is never a terminal, so browse must refuse before
	// opening the workspace or taking over the screen.
	_, err := execute(t, "browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestBrowseLoader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	_, err := execute(t, "data", "seed", "--dir", dir)
	require.NoError(t, err)

	store, err := workspace.Open(db)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	load := browseLoader(store, dir)
	records, counts, err := load(ctx)
	require.NoError(t, err)

	for _, entity := range []string{"requests", "quotes", "projects"} {
		assert.NotEmpty(t, records[entity], "no %s loaded", entity)
		assert.Equal(t, len(records[entity]), counts[entity])
	}

	t.Run("empty data dir keeps workspace records", func(t *testing.T) {
		load := browseLoader(store, t.TempDir())
		records, _, err := load(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, records["requests"])
	})

	t.Run("missing data dir is fine", func(t *testing.T) {
		load := browseLoader(store, filepath.Join(t.TempDir(), "nope"))
		_, _, err := load(ctx)
		assert.NoError(t, err)
	})
}

func TestSyncDataDirRejectsBadExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	store, err := workspace.Open(db)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	writeFile(t, filepath.Join(dir, "requests.json"),
		`{"schemaVersion":"9.0.0","entity":"requests","records":[]}`)

	err = syncDataDir(context.Background(), store, dir)
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
