package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigTemplate is written by `renodesk config init`. Values shown
// commented out are the built-in defaults.
const defaultConfigTemplate = `# renodesk configuration
#
# Layers resolve in order: defaults, this file, a project-local
# .renodesk/config.yaml overlay, environment variables, CLI flags.

workspace:
  # Directory holding JSON/CSV export files for import and seeding.
  # data_dir: ~/.renodesk/data

  # SQLite snapshot of imported records.
  # database_path: ~/.renodesk/workspace.db

ui:
  # Terminal-column breakpoints for the responsive list screens.
  # Below mobile_breakpoint the browser always renders cards; at
  # wide_breakpoint and above every column is shown.
  # mobile_breakpoint: 80
  # wide_breakpoint: 120

  # Cards shown per page in cards mode.
  # card_page_size: 6

  # Persisted preference key namespace and store location.
  # key_prefix: admin
  # preferences_path: ~/.renodesk/preferences.json

logging:
  # trace, debug, info, warn, error
  level: info
  # console or json
  format: console
  # Uncomment to log to a file (always JSON).
  # file: ~/.renodesk/renodesk.log
`

// WriteDefault writes the commented default config template to path,
// creating parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
