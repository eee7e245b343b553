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

func TestDataSeedAndImportDir(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	out, err := execute(t, "data", "seed", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "quotes")
	assert.Contains(t, out, "projects")

	for _, name := range []string{"requests.json", "quotes.json", "projects.json"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, "expected seed file %s", name)
	}

	out, err = execute(t, "data", "import", "--dir", dir, "--workspace", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	store, err := workspace.Open(db)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	for _, entity := range []string{"requests", "quotes", "projects"} {
		assert.Positive(t, counts[entity], "no %s imported", entity)
	}
}

func TestDataImportSingleFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	_, err := execute(t, "data", "seed", "--dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "data", "import",
		"--file", filepath.Join(dir, "quotes.json"), "--workspace", db)
	require.NoError(t, err)
	assert.Contains(t, out, "quotes")

	store, err := workspace.Open(db)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	entities, err := store.Entities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"quotes"}, entities)
}

func TestDataImportEntityOverride(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	_, err := execute(t, "data", "seed", "--dir", dir)
	require.NoError(t, err)

	_, err = execute(t, "data", "import",
		"--file", filepath.Join(dir, "requests.json"),
		"--entity", "leads", "--workspace", db)
	require.NoError(t, err)

	store, err := workspace.Open(db)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	entities, err := store.Entities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"leads"}, entities)

	t.Run("entity with dir rejected", func(t *testing.T) {
		_, err := execute(t, "data", "import", "--dir", dir, "--entity", "leads")
		assert.Error(t, err)
	})
}

func TestDataImportFlagExclusivity(t *testing.T) {
	t.Run("neither", func(t *testing.T) {
		_, err := execute(t, "data", "import")
		assert.Error(t, err)
	})

	t.Run("both", func(t *testing.T) {
		_, err := execute(t, "data", "import", "--file", "a.json", "--dir", "b")
		assert.Error(t, err)
	})
}

func TestDataHistory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "workspace.db")

	_, err := execute(t, "data", "seed", "--dir", dir)
	require.NoError(t, err)
	_, err = execute(t, "data", "import", "--dir", dir, "--workspace", db)
	require.NoError(t, err)

	t.Run("with imports", func(t *testing.T) {
		out, err := execute(t, "data", "history", "--entity", "requests", "--workspace", db)
		require.NoError(t, err)
		assert.Contains(t, out, "BATCH")
		assert.Contains(t, out, "1.0.0")
	})

	t.Run("no imports", func(t *testing.T) {
		out, err := execute(t, "data", "history", "--entity", "projects",
			"--workspace", filepath.Join(t.TempDir(), "fresh.db"))
		require.NoError(t, err)
		assert.Contains(t, out, "No imports recorded")
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := execute(t, "data", "history", "--entity", "invoices", "--workspace", db)
		assert.Error(t, err)
	})
}
