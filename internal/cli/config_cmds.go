package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/config"
)

// newConfigCmd creates the config command group: init, validate, path.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage renodesk configuration",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd(), newConfigPathCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the commented default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// setupRuntime already loaded and validated the layered config;
			// reaching this point means it passed.
			cfg := configFromCmd(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.Println("Configuration is valid")
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalPath, _ := cmd.Flags().GetString("config")
			if globalPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				globalPath = p
			}
			cmd.Printf("global: %s\n", globalPath)

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			if projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, cwd); projectDir != "" {
				cmd.Printf("project: %s\n", projectDir)
			}
			return nil
		},
	}
}
