package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/listview"
)

// View renders the current view (Bubble Tea interface).
func (m *BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case ViewStateLoading:
		return m.renderLoading()
	case ViewStateDetail:
		return m.renderDetail()
	case ViewStateList:
		return m.renderList()
	default:
		return ""
	}
}

func (m *BrowseModel) renderLoading() string {
	return m.loading.View() + " Loading workspace..."
}

func (m *BrowseModel) renderList() string {
	sections := []string{
		m.renderTabs(),
		m.renderSummary(),
	}

	if m.snap.Mode == listview.ModeCards {
		sections = append(sections, RenderCards(m.screen(), m.snap, m.cardCursor, m.width))
	} else {
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.renderStatusBar())

	if m.searchOpen {
		sections = append(sections, LabelStyle.Render("Search: ")+m.search.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabs draws the entity screens with the active one highlighted.
func (m *BrowseModel) renderTabs() string {
	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		if i == m.active {
			tabs[i] = TabActiveStyle.Render(s.View.Title)
		} else {
			tabs[i] = TabInactiveStyle.Render(s.View.Title)
		}
	}
	return strings.Join(tabs, "  ")
}

// renderSummary draws the boxed header: record counts, the amount total
// over the matching rows, and the per-status breakdown.
func (m *BrowseModel) renderSummary() string {
	screen := m.screen()
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(screen.View.Title)))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Records: "))
	content.WriteString(ValueStyle.Render(catalog.FormatCount(m.snap.TotalCount)))
	content.WriteString(LabelStyle.Render("    Matching: "))
	content.WriteString(ValueStyle.Render(catalog.FormatCount(m.snap.MatchCount)))

	if screen.AmountField != "" {
		total := 0.0
		for _, r := range m.snap.Rows {
			if amount, ok := catalog.AmountOf(screen, r); ok {
				total += amount
			}
		}
		content.WriteString(LabelStyle.Render("    Total: "))
		content.WriteString(ValueStyle.Render(catalog.FormatMoney(total)))
	}

	if line := m.renderStatusBreakdown(screen); line != "" {
		content.WriteString("\n")
		content.WriteString(line)
	}

	width := m.width - borderPadding
	if width < 20 {
		width = 20
	}
	return BoxStyle.Width(width).Render(content.String())
}

// renderStatusBreakdown counts the matching rows per status value, most
// frequent first.
func (m *BrowseModel) renderStatusBreakdown(screen catalog.Screen) string {
	if screen.StatusField == "" || len(m.snap.Rows) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, r := range m.snap.Rows {
		status := listview.FormatValue(r.Field(screen.StatusField))
		if status == "" {
			continue
		}
		counts[status]++
	}
	if len(counts) == 0 {
		return ""
	}

	type statusCount struct {
		Name  string
		Count int
	}
	ordered := make([]statusCount, 0, len(counts))
	for name, count := range counts {
		ordered = append(ordered, statusCount{name, count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Name < ordered[j].Name
	})

	parts := make([]string, len(ordered))
	for i, sc := range ordered {
		parts[i] = fmt.Sprintf("%s: %d", sc.Name, sc.Count)
	}
	return LabelStyle.Render(strings.Join(parts, "  "))
}

// renderStatusBar draws the filter line and the sort/page/mode line with
// key hints.
func (m *BrowseModel) renderStatusBar() string {
	e := m.engine()

	var filters string
	if fields := e.Filters(); len(fields) > 0 {
		active := e.ActiveFilters()
		parts := make([]string, len(fields))
		for i, f := range fields {
			value := active[f.Field]
			if value == "" {
				value = listview.FilterAll
			}
			part := fmt.Sprintf("%s=%s", f.Field, value)
			if i == m.focusFilter {
				parts[i] = FilterFocusStyle.Render("[" + part + "]")
			} else {
				parts[i] = SubtleStyle.Render(part)
			}
		}
		filters = LabelStyle.Render("Filters: ") + strings.Join(parts, " ")
	}

	dirIcon := IconSortAsc
	if m.snap.SortDir == listview.Descending {
		dirIcon = IconSortDesc
	}

	status := fmt.Sprintf("%s · sort %s %s · %d/%d · page %d/%d · %s · %s",
		e.Entity(),
		m.snap.SortKey, dirIcon,
		m.snap.MatchCount, m.snap.TotalCount,
		m.snap.PageIndex+1, maxInt(m.snap.PageCount, 1),
		m.snap.Mode, m.snap.Density,
	)

	hints := "/ search · f filter · F clear · s/S sort · v view · d density · tab screen · enter detail · q quit"

	lines := []string{}
	if filters != "" {
		lines = append(lines, filters)
	}
	lines = append(lines, SubtleStyle.Render(status), SubtleStyle.Render(hints))
	return strings.Join(lines, "\n")
}

// renderDetail shows every field of the selected record.
func (m *BrowseModel) renderDetail() string {
	if m.detailIndex < 0 || m.detailIndex >= len(m.snap.Rows) {
		return InfoStyle.Render("Nothing selected.")
	}

	screen := m.screen()
	r := m.snap.Rows[m.detailIndex]
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(screen.View.Title) + " DETAIL"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render(padLabel("ID")))
	content.WriteString(ValueStyle.Render(r.ID()))
	content.WriteString("\n")

	covered := map[string]bool{listview.RecordIDField: true}
	for _, col := range screen.View.Columns {
		covered[col.Key] = true
		value := col.CellValue(r)
		if value == "" {
			value = "-"
		}
		content.WriteString(LabelStyle.Render(padLabel(col.Label)))
		content.WriteString(ValueStyle.Render(value))
		content.WriteString("\n")
	}

	// Any remaining fields the columns do not cover, nested maps included.
	extras := make([]string, 0, len(r))
	for key := range r {
		if !covered[key] && key != "property" {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	if len(extras) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("OTHER FIELDS"))
		content.WriteString("\n")
		for _, key := range extras {
			writeDetailField(&content, key, r[key])
		}
	}

	content.WriteString("\n")
	content.WriteString(SubtleStyle.Render("Press ESC to return"))

	width := m.width - borderPadding
	if width < 20 {
		width = 20
	}
	return BoxStyle.Width(width).Render(content.String())
}

// writeDetailField renders one extra field, expanding nested objects.
func writeDetailField(content *strings.Builder, key string, value any) {
	if nested, ok := value.(map[string]any); ok {
		content.WriteString(LabelStyle.Render(key + ":"))
		content.WriteString("\n")
		subKeys := make([]string, 0, len(nested))
		for k := range nested {
			subKeys = append(subKeys, k)
		}
		sort.Strings(subKeys)
		for _, k := range subKeys {
			content.WriteString(LabelStyle.Render("  " + padLabel(k)))
			content.WriteString(ValueStyle.Render(listview.FormatValue(nested[k])))
			content.WriteString("\n")
		}
		return
	}

	content.WriteString(LabelStyle.Render(padLabel(key)))
	content.WriteString(ValueStyle.Render(listview.FormatValue(value)))
	content.WriteString("\n")
}

// detailLabelWidth aligns detail values in one column.
const detailLabelWidth = 16

func padLabel(label string) string {
	label += ":"
	for len(label) < detailLabelWidth {
		label += " "
	}
	return label
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
