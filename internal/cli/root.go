// Package cli wires the renodesk command tree: the interactive browser,
// per-entity list/show commands, workspace data management, and config
// helpers. Commands resolve configuration in layers (defaults, global
// file, project overlay, environment, flags) before running.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the renodesk CLI.
// It wires up config resolution, logging, tracing, and the subcommand
// groups (browse, per-entity lists, data, config).
func NewRootCmd(ver string) *cobra.Command {
	var logResult *setupResult

	cmd := &cobra.Command{
		Use:     "renodesk",
		Short:   "Back-office console for renovation requests, quotes, and projects",
		Long:    "Renodesk: browse and manage renovation Requests, Quotes, and Projects from the terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setupRuntime(cmd)
			if err != nil {
				return err
			}
			logResult = result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupRuntime(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.renodesk/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory containing a .renodesk overlay")

	cmd.AddCommand(newBrowseCmd())
	for _, entity := range entityCommands() {
		cmd.AddCommand(entity)
	}
	cmd.AddCommand(newDataCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Seed demo data and browse it interactively
  renodesk data seed
  renodesk browse

  # Browse quotes, reloading whenever the export directory changes
  renodesk browse quotes --watch

  # List archived requests mentioning a kitchen, newest first
  renodesk requests list --filter status=Archived --search kitchen --sort createdAt:desc

  # Script against the same list semantics
  renodesk projects list --output ndjson --page-size 0

  # Show one record
  renodesk quotes show 7f6b1c2e-...

  # Import a backend export into the local workspace
  renodesk data import --file requests.json

  # Write the default configuration
  renodesk config init`
