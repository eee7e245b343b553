package cli

import (
	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/config"
	"github.com/renodesk/renodesk/internal/logging"
)

// setupLogging builds the logger from the config's logging section and
// the --debug flag. Debug mode forces console output to the terminal so
// the user sees everything, whatever the file says.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.Result {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	return result
}
