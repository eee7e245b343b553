package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/renodesk/renodesk/internal/cli/pagination"
	"github.com/renodesk/renodesk/internal/listview"
)

// Output formats for list and show commands.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// emptyCell is rendered for fields with no value, so columns stay aligned
// and missing data is visibly missing.
const emptyCell = "-"

func validateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (use table, json, or ndjson)", format)
	}
}

// outputWidth picks the viewport width the engine derives column
// visibility from. Piped output and --wide behave like a wide screen;
// a real terminal reports its own width.
func outputWidth(wideBreakpoint int, wide bool) int {
	if wide || !isTerminal(os.Stdout) {
		return wideBreakpoint
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return wideBreakpoint
}

// listEnvelope is the JSON output shape of list commands. Field names are
// camelCase to match the backend export format.
type listEnvelope struct {
	Entity  string            `json:"entity"`
	Meta    pagination.Meta   `json:"meta"`
	Records []listview.Record `json:"records"`
}

// renderList writes one page of list results in the requested format.
func renderList(w io.Writer, format, entity string, snap listview.Snapshot) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listEnvelope{Entity: entity, Meta: pagination.NewMeta(snap), Records: snap.Page})
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range snap.Page {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderTable(w, snap)
	}
}

// renderTable writes the page as an aligned text table with a paging
// footer. Only the columns the engine decided are visible appear.
func renderTable(w io.Writer, snap listview.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, col := range snap.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		label := col.Label
		if col.Key == snap.SortKey {
			label += sortMarker(snap.SortDir)
		}
		fmt.Fprint(tw, label)
	}
	fmt.Fprintln(tw)

	for _, r := range snap.Page {
		for i, col := range snap.Columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			cell := col.CellValue(r)
			if cell == "" {
				cell = emptyCell
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	meta := pagination.NewMeta(snap)
	if meta.MatchCount == 0 {
		fmt.Fprintln(w, "No matching records")
		return nil
	}
	fmt.Fprintf(w, "Page %d of %d (%d of %d records)\n",
		meta.Page, meta.TotalPages, meta.MatchCount, meta.TotalCount)
	return nil
}

func sortMarker(dir listview.Direction) string {
	if dir == listview.Descending {
		return " ▼"
	}
	return " ▲"
}

// renderRecord writes one record, either as pretty JSON or as a two-column
// field table with the fields sorted by name and the id first.
func renderRecord(w io.Writer, format string, record listview.Record) error {
	if format == OutputJSON || format == OutputNDJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	keys = append([]string{"id"}, keys...)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		value := listview.FormatValue(record.Field(k))
		if value == "" {
			value = emptyCell
		}
		fmt.Fprintf(tw, "%s\t%s\n", k, value)
	}
	return tw.Flush()
}
