package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/ingest"
	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/tui"
	"github.com/renodesk/renodesk/internal/workspace"
)

// newBrowseCmd creates the interactive browser command.
func newBrowseCmd() *cobra.Command {
	var dataDir string
	var watch bool

	cmd := &cobra.Command{
		Use:   "browse [entity]",
		Short: "Browse requests, quotes, and projects interactively",
		Long: "Browse opens the full-screen browser over the local workspace. " +
			"Export files found in the data directory are imported first, so a " +
			"fresh `renodesk data seed` is browsable immediately.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := catalog.EntityRequests
			if len(args) == 1 {
				initial = args[0]
			}
			return runBrowse(cmd, initial, dataDir, watch)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "export directory to import from (overrides config)")
	cmd.Flags().String("workspace", "", "workspace database file (overrides config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when export files in the data directory change")

	return cmd
}

func runBrowse(cmd *cobra.Command, initial, dataDir string, watch bool) error {
	if !isTerminal(os.Stdout) {
		return errors.New("browse needs an interactive terminal; use the list commands for scripting")
	}

	cfg := configFromCmd(cmd)
	if dataDir == "" {
		dataDir = cfg.Workspace.DataDir
	}

	// Validate the entity name before taking over the screen.
	screens := make([]catalog.Screen, 0, len(catalog.Entities()))
	known := false
	for _, entity := range catalog.Entities() {
		screen, err := catalog.ByEntity(entity, cfg.UI)
		if err != nil {
			return err
		}
		screens = append(screens, screen)
		if entity == initial {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownEntity, initial)
	}

	store, err := openWorkspace(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()

	var watcher *tui.Watcher
	if watch {
		watcher, err = tui.NewWatcher(ctx, dataDir)
		if err != nil {
			return fmt.Errorf("starting watch on %s: %w", dataDir, err)
		}
		defer func() { _ = watcher.Close() }()
	}

	model, err := tui.NewBrowseModel(ctx, screens, openPrefs(cmd, cfg), browseLoader(store, dataDir), watcher, initial)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	if m, ok := final.(*tui.BrowseModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// browseLoader builds the browser's load function: sync export files from
// the data directory into the workspace, then read every entity back out.
// A missing or empty data directory is fine; the workspace alone serves.
func browseLoader(store *workspace.Store, dataDir string) tui.LoadFunc {
	return func(ctx context.Context) (map[string][]listview.Record, map[string]int, error) {
		if err := syncDataDir(ctx, store, dataDir); err != nil {
			return nil, nil, err
		}

		records := make(map[string][]listview.Record, len(catalog.Entities()))
		for _, entity := range catalog.Entities() {
			list, err := store.List(ctx, entity)
			if err != nil {
				return nil, nil, err
			}
			records[entity] = list
		}

		counts, err := store.Counts(ctx)
		if err != nil {
			return nil, nil, err
		}
		return records, counts, nil
	}
}

// syncDataDir imports every export file in dataDir into the workspace.
// Entities outside the catalog are imported too; the browser just does not
// show them.
func syncDataDir(ctx context.Context, store *workspace.Store, dataDir string) error {
	if dataDir == "" {
		return nil
	}
	if _, err := os.Stat(dataDir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking data directory: %w", err)
	}

	exports, err := ingest.LoadDirWithContext(ctx, dataDir)
	if err != nil {
		if errors.Is(err, ingest.ErrNoExports) {
			return nil
		}
		return err
	}

	for _, export := range exports {
		meta := workspace.ImportMeta{
			Source:        dataDir,
			SchemaVersion: export.SchemaVersion,
			ExportedAt:    export.ExportedAt,
		}
		if _, err := store.ReplaceEntity(ctx, export.Entity, export.Records, meta); err != nil {
			return err
		}
	}
	return nil
}
