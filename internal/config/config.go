// Package config loads and validates renodesk configuration.
//
// Configuration resolves in layers: built-in defaults, the global file
// (~/.renodesk/config.yaml), an optional project-local overlay
// (.renodesk/config.yaml found by walking up from the working directory),
// then environment variables, then CLI flags. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/renodesk/renodesk/internal/logging"
)

// Environment variable overrides, applied after file layers.
const (
	EnvLogLevel   = "RENODESK_LOG_LEVEL"
	EnvLogFormat  = "RENODESK_LOG_FORMAT"
	EnvDataDir    = "RENODESK_DATA_DIR"
	EnvProjectDir = "RENODESK_PROJECT_DIR"
)

// Config is the full application configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorkspaceConfig locates the local data workspace.
type WorkspaceConfig struct {
	// DataDir holds export files (JSON/CSV) for import and seeding.
	DataDir string `yaml:"data_dir"`
	// DatabasePath is the SQLite snapshot file.
	DatabasePath string `yaml:"database_path"`
}

// UIConfig tunes the list screens. Breakpoints are terminal columns.
type UIConfig struct {
	// KeyPrefix namespaces persisted preference keys.
	KeyPrefix string `yaml:"key_prefix"`
	// MobileBreakpoint is the width below which cards mode is forced.
	MobileBreakpoint int `yaml:"mobile_breakpoint"`
	// WideBreakpoint is the width at which every column is shown.
	WideBreakpoint int `yaml:"wide_breakpoint"`
	// CardPageSize is the number of cards per page.
	CardPageSize int `yaml:"card_page_size"`
	// PreferencesPath overrides the preference store location.
	PreferencesPath string `yaml:"preferences_path"`
}

// LoggingConfig is the logging section.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Terminal-appropriate UI defaults. A standard 80-column terminal reads
// like a phone; 120 columns and up fits every request column comfortably.
const (
	DefaultMobileColumns = 80
	DefaultWideColumns   = 120
	DefaultCardPageSize  = 6
	DefaultKeyPrefix     = "admin"
)

// Default returns the built-in configuration. Paths resolve under the
// user's home directory, falling back to the working directory when the
// home directory cannot be determined.
func Default() *Config {
	base := "."
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".renodesk")
	}

	return &Config{
		Workspace: WorkspaceConfig{
			DataDir:      filepath.Join(base, "data"),
			DatabasePath: filepath.Join(base, "workspace.db"),
		},
		UI: UIConfig{
			KeyPrefix:        DefaultKeyPrefix,
			MobileBreakpoint: DefaultMobileColumns,
			WideBreakpoint:   DefaultWideColumns,
			CardPageSize:     DefaultCardPageSize,
			PreferencesPath:  filepath.Join(base, "preferences.json"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the global config file location,
// ~/.renodesk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".renodesk", "config.yaml"), nil
}

// Load reads the config file at path onto the defaults. An empty path
// selects DefaultPath; a missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies environment variable overrides onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Workspace.DataDir = v
	}
}

// Validate checks the configuration for values no command could run with.
// Error messages name the offending field path.
func (c *Config) Validate() error {
	if c.Workspace.DataDir == "" {
		return errors.New("workspace.data_dir: must not be empty")
	}
	if c.Workspace.DatabasePath == "" {
		return errors.New("workspace.database_path: must not be empty")
	}
	if c.UI.MobileBreakpoint <= 0 {
		return fmt.Errorf("ui.mobile_breakpoint: must be positive, got %d", c.UI.MobileBreakpoint)
	}
	if c.UI.WideBreakpoint < c.UI.MobileBreakpoint {
		return fmt.Errorf("ui.wide_breakpoint: must be >= ui.mobile_breakpoint (%d), got %d",
			c.UI.MobileBreakpoint, c.UI.WideBreakpoint)
	}
	if c.UI.CardPageSize < 1 {
		return fmt.Errorf("ui.card_page_size: must be >= 1, got %d", c.UI.CardPageSize)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format: must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	return nil
}

// ToLoggingConfig bridges the logging section to the logging package.
// A file path switches output to the file target.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
