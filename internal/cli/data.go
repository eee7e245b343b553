package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/ingest"
	"github.com/renodesk/renodesk/internal/workspace"
)

// seedSchemaVersion is the envelope version `data seed` writes.
const seedSchemaVersion = "1.0.0"

// newDataCmd creates the data command group: import, seed, history.
func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the local data workspace",
	}
	cmd.AddCommand(newDataImportCmd(), newDataSeedCmd(), newDataHistoryCmd())
	return cmd
}

func newDataImportCmd() *cobra.Command {
	var file string
	var dir string
	var entity string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import export files into the workspace",
		Long: "Import replaces an entity's workspace records with the contents of a " +
			"JSON export envelope or a CSV dump (entity taken from the file name). " +
			"--dir imports every export file in a directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (file == "") == (dir == "") {
				return errors.New("exactly one of --file or --dir is required")
			}

			cfg := configFromCmd(cmd)
			store, err := openWorkspace(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()

			var exports []*ingest.Export
			source := file
			if dir != "" {
				source = dir
				exports, err = ingest.LoadDirWithContext(ctx, dir)
			} else {
				var export *ingest.Export
				export, err = ingest.LoadExportWithContext(ctx, file)
				exports = []*ingest.Export{export}
			}
			if err != nil {
				return err
			}

			// --entity overrides the envelope/filename entity for a
			// single-file import; directories carry their own names.
			if entity != "" {
				if dir != "" {
					return errors.New("--entity only applies with --file")
				}
				exports[0].Entity = entity
			}

			for _, export := range exports {
				meta := workspace.ImportMeta{
					Source:        source,
					SchemaVersion: export.SchemaVersion,
					ExportedAt:    export.ExportedAt,
				}
				result, err := store.ReplaceEntity(ctx, export.Entity, export.Records, meta)
				if err != nil {
					return err
				}
				cmd.Printf("Imported %d %s records (batch %s)\n", result.Count, result.Entity, result.BatchID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "export file to import (.json or .csv)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory of export files to import")
	cmd.Flags().StringVar(&entity, "entity", "", "override the entity a --file import targets")
	cmd.Flags().String("workspace", "", "workspace database file (overrides config)")

	return cmd
}

func newDataSeedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a demo dataset into the data directory",
		Long: "Seed writes realistic JSON exports for requests, quotes, and projects " +
			"into the data directory, where `browse` and `data import --dir` pick them up.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)
			if dir == "" {
				dir = cfg.Workspace.DataDir
			}

			exportedAt := time.Now().UTC().Format(time.RFC3339)
			for _, entity := range catalog.Entities() {
				records, err := catalog.SeedRecords(entity)
				if err != nil {
					return err
				}

				path := filepath.Join(dir, entity+".json")
				export := &ingest.Export{
					SchemaVersion: seedSchemaVersion,
					Entity:        entity,
					ExportedAt:    exportedAt,
					Records:       records,
				}
				if err := ingest.WriteExport(path, export); err != nil {
					return err
				}
				cmd.Printf("Wrote %d %s records to %s\n", len(records), entity, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "target directory (default: workspace data_dir)")

	return cmd
}

func newDataHistoryCmd() *cobra.Command {
	var entity string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show import batches for an entity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)
			if _, err := catalog.ByEntity(entity, cfg.UI); err != nil {
				return err
			}

			store, err := openWorkspace(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			history, err := store.ImportHistory(cmd.Context(), entity, limit)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				cmd.Printf("No imports recorded for %s\n", entity)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BATCH\tRECORDS\tSCHEMA\tSOURCE\tIMPORTED")
			for _, rec := range history {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
					rec.BatchID, rec.Count, rec.SchemaVersion, rec.Source,
					rec.ImportedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&entity, "entity", catalog.EntityRequests, "entity to show history for")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum batches to show (0 shows all)")
	cmd.Flags().String("workspace", "", "workspace database file (overrides config)")

	return cmd
}
