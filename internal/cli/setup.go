package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/config"
	"github.com/renodesk/renodesk/internal/listview"
	"github.com/renodesk/renodesk/internal/logging"
	"github.com/renodesk/renodesk/internal/prefs"
	"github.com/renodesk/renodesk/internal/workspace"
)

// configKey carries the resolved *config.Config on the command context.
type configKey struct{}

// setupResult bundles the handles PersistentPostRunE must release.
type setupResult struct {
	log logging.Result
}

// setupRuntime resolves configuration, builds the logger, and attaches
// both to the command context. Every subcommand reads them from there.
func setupRuntime(cmd *cobra.Command) (*setupResult, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	result := setupLogging(cmd, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return &setupResult{log: result}, nil
}

// cleanupRuntime closes the log file handle, if any.
func cleanupRuntime(result *setupResult) error {
	if result == nil {
		return nil
	}
	return result.log.Close()
}

// loadConfig resolves the layered configuration: defaults, the global
// file (--config or the default path), a project-local overlay, then
// environment variables. Validation happens here so every command runs
// against a config it could actually use; `config validate` reports the
// same errors with the file paths attached.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	globalPath, _ := cmd.Flags().GetString("config")
	projectFlag, _ := cmd.Flags().GetString("project-dir")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, cwd)

	cfg, err := config.LoadWithProjectOverlay(ctx, globalPath, projectDir)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// configFromCmd returns the config attached by setupRuntime.
func configFromCmd(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// openWorkspace opens the SQLite snapshot, honoring a --workspace flag
// override when the command declares one.
func openWorkspace(cmd *cobra.Command, cfg *config.Config) (*workspace.Store, error) {
	path := cfg.Workspace.DatabasePath
	if flag := cmd.Flags().Lookup("workspace"); flag != nil && flag.Changed {
		path = flag.Value.String()
	}

	store, err := workspace.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workspace %s: %w", path, err)
	}
	return store, nil
}

// openPrefs opens the persisted preference store. A store that cannot be
// created degrades to in-memory preferences with a warning: browsing must
// work even on a read-only home directory.
func openPrefs(cmd *cobra.Command, cfg *config.Config) listview.PreferenceStore {
	path := cfg.UI.PreferencesPath
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return prefs.NewMemoryStore()
		}
		path = p
	}

	store, err := prefs.NewFileStore(path)
	if err != nil {
		logger.Warn().Ctx(cmd.Context()).Err(err).Str("path", path).
			Msg("preference store unavailable, preferences will not persist")
		return prefs.NewMemoryStore()
	}
	return store
}
