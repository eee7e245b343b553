package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/renodesk/renodesk/internal/logging"
)

// LoadDir loads every export file in dir.
func LoadDir(dir string) ([]*Export, error) {
	return LoadDirWithContext(context.Background(), dir)
}

// LoadDirWithContext loads every .json and .csv file in dir, in parallel,
// and returns the exports sorted by entity then source file. Any file that
// fails to parse aborts the whole load.
func LoadDirWithContext(ctx context.Context, dir string) ([]*Export, error) {
	log := logging.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".csv":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_dir").
		Str("dir", dir).
		Int("file_count", len(paths)).
		Msg("loading export directory")

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExports, dir)
	}

	type loaded struct {
		path   string
		export *Export
	}

	var mu sync.Mutex
	results := make([]loaded, 0, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			export, loadErr := LoadExportWithContext(gCtx, path)
			if loadErr != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), loadErr)
			}
			mu.Lock()
			results = append(results, loaded{path: path, export: export})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].export.Entity != results[j].export.Entity {
			return results[i].export.Entity < results[j].export.Entity
		}
		return results[i].path < results[j].path
	})

	exports := make([]*Export, len(results))
	for i, r := range results {
		exports[i] = r.export
	}
	return exports, nil
}
