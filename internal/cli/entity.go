package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/cli/pagination"
	"github.com/renodesk/renodesk/internal/listview"
)

// entityShort maps entity names to their command descriptions.
var entityShort = map[string]string{ //nolint:gochecknoglobals // Static command metadata.
	catalog.EntityRequests: "Incoming renovation leads",
	catalog.EntityQuotes:   "Quotes sent to agents and homeowners",
	catalog.EntityProjects: "Renovation projects in progress",
}

// entityCommands builds one command group per catalog entity.
func entityCommands() []*cobra.Command {
	entities := catalog.Entities()
	cmds := make([]*cobra.Command, 0, len(entities))
	for _, entity := range entities {
		cmds = append(cmds, newEntityCmd(entity))
	}
	return cmds
}

func newEntityCmd(entity string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   entity,
		Short: entityShort[entity],
	}
	cmd.AddCommand(newListCmd(entity), newShowCmd(entity))
	return cmd
}

// newListCmd creates the list subcommand for one entity. It applies the
// same search -> filter -> sort -> paginate semantics the browser uses.
func newListCmd(entity string) *cobra.Command {
	params := pagination.NewParams()
	var outputFormat string
	var wide bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s from the workspace", entity),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, entity, params, outputFormat, wide)
		},
	}

	params.Bind(cmd.Flags())
	cmd.Flags().StringVarP(&outputFormat, "output", "o", OutputTable, "output format: table, json, or ndjson")
	cmd.Flags().BoolVar(&wide, "wide", false, "show every column regardless of terminal width")
	cmd.Flags().String("workspace", "", "workspace database file (overrides config)")

	return cmd
}

func runList(cmd *cobra.Command, entity string, params *pagination.Params, outputFormat string, wide bool) error {
	if err := validateOutputFormat(outputFormat); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	cfg := configFromCmd(cmd)
	screen, err := catalog.ByEntity(entity, cfg.UI)
	if err != nil {
		return err
	}

	filters, err := params.FilterMap()
	if err != nil {
		return err
	}
	if err := pagination.ValidateFilterFields(filters, screen.View.Filters); err != nil {
		return err
	}

	sortKey := screen.View.DefaultSortKey
	sortDir := screen.View.DefaultSortDir
	if params.Sort != "" {
		sortKey, sortDir, err = pagination.ParseSort(params.Sort)
		if err != nil {
			return err
		}
		if err := pagination.ValidateSortField(sortKey, screen.View.Columns); err != nil {
			return err
		}
	}

	store, err := openWorkspace(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	records, err := store.List(ctx, entity)
	if err != nil {
		return err
	}

	engine, err := listview.New(screen.View, nil)
	if err != nil {
		return fmt.Errorf("building %s list engine: %w", entity, err)
	}

	engine.SetSearch(params.Search)
	for field, value := range filters {
		engine.SetFilter(field, value)
	}
	engine.SetSort(sortKey, sortDir)

	pageSize := params.PageSize
	if pageSize == 0 {
		// Paging disabled: one page that holds everything.
		pageSize = len(records)
		if pageSize < 1 {
			pageSize = 1
		}
	}
	engine.SetCardPageSize(pageSize)
	engine.SetCardPage(params.PageIndex())
	engine.SetViewportWidth(outputWidth(cfg.UI.WideBreakpoint, wide))

	snap := engine.Snapshot(records)

	logger.Debug().Ctx(ctx).
		Str("operation", "list").
		Str("entity", entity).
		Int("total", snap.TotalCount).
		Int("matched", snap.MatchCount).
		Msg("list derived")

	return renderList(cmd.OutOrStdout(), outputFormat, entity, snap)
}

// newShowCmd creates the show subcommand for one entity.
func newShowCmd(entity string) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s record by id", trimPlural(entity)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(outputFormat); err != nil {
				return err
			}

			cfg := configFromCmd(cmd)
			store, err := openWorkspace(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.Get(cmd.Context(), entity, args[0])
			if err != nil {
				return err
			}
			return renderRecord(cmd.OutOrStdout(), outputFormat, record)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", OutputTable, "output format: table or json")
	cmd.Flags().String("workspace", "", "workspace database file (overrides config)")

	return cmd
}

// trimPlural drops a trailing "s" for singular command text.
func trimPlural(entity string) string {
	if len(entity) > 1 && entity[len(entity)-1] == 's' {
		return entity[:len(entity)-1]
	}
	return entity
}
