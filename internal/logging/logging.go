// Package logging provides structured logging for renodesk built on zerolog.
//
// Loggers flow through context.Context so that every subsystem logs with the
// same trace ID and configuration. Components attach themselves with
// ComponentLogger and retrieve the ambient logger with FromContext.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output targets accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("trace" through "disabled").
	// Unparseable values fall back to "info".
	Level string
	// Format selects console (human) or json (machine) encoding.
	Format string
	// Output selects stderr, stdout, or file.
	Output string
	// File is the log file path when Output is "file".
	File string
	// Caller adds file:line caller annotations.
	Caller bool
}

// Result reports how the logger was actually wired. When a file target
// cannot be opened the logger falls back to stderr and records why.
type Result struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any. Safe to call on a
// stderr-backed result.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. It never fails: a file target that cannot
// be opened degrades to stderr with FallbackUsed set so the caller can warn.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	res := Result{}
	var out io.Writer

	switch cfg.Output {
	case OutputFile:
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			res.FallbackUsed = true
			res.FallbackReason = openErr.Error()
			out = os.Stderr
		} else {
			res.UsingFile = true
			res.FilePath = cfg.File
			res.file = f
			out = f
		}
	case OutputStdout:
		out = os.Stdout
	default:
		out = os.Stderr
	}

	// Files always get JSON so they stay machine-readable; the console
	// format only applies to terminal-facing writers.
	if cfg.Format != FormatJSON && !res.UsingFile {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	res.Logger = logCtx.Logger()
	return res
}

// ComponentLogger returns a child logger tagged with a component field.
// Subsystems use this once at their boundary so every line they emit is
// attributable.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached. Callers can always log without nil checks.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	return *zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where file logging landed.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user why file logging was not available.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
