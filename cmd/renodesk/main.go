// Command renodesk is the back-office console for a home-renovation
// services business: an interactive browser plus scripting-friendly list
// commands over locally imported Requests, Quotes, and Projects.
package main

import (
	"os"

	"github.com/renodesk/renodesk/internal/cli"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Build-time stamp.

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit code.
// Cobra already printed the error by the time Execute returns.
func run() int {
	root := cli.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
