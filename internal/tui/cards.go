package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renodesk/renodesk/internal/catalog"
	"github.com/renodesk/renodesk/internal/listview"
)

// Card width clamps.
const (
	minCardWidth = 24
	maxCardWidth = 76
)

// RenderCards renders the current cards page: one bordered card per
// record, the selected one with an accent border. Compact density drops
// empty fields; comfortable pads the card and shows every declared field.
func RenderCards(screen catalog.Screen, snap listview.Snapshot, cursor, width int) string {
	if len(snap.Page) == 0 {
		return InfoStyle.Render("No matching records.")
	}

	cardWidth := width - borderPadding*2
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}
	if cardWidth > maxCardWidth {
		cardWidth = maxCardWidth
	}

	comfortable := snap.Density == listview.DensityComfortable

	sections := make([]string, 0, len(snap.Page)+1)
	for i, r := range snap.Page {
		style := CardStyle
		if i == cursor {
			style = CardSelectedStyle
		}
		if comfortable {
			style = style.Padding(1, 2)
		} else {
			style = style.Padding(0, 1)
		}
		sections = append(sections, style.Width(cardWidth).Render(renderCard(screen, r, comfortable)))
	}

	footer := fmt.Sprintf("Page %d/%d · %d matching", snap.PageIndex+1, snap.PageCount, snap.MatchCount)
	sections = append(sections, SubtleStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCard builds one card body: the title line plus the declared card
// fields.
func renderCard(screen catalog.Screen, r listview.Record, comfortable bool) string {
	var body strings.Builder

	title := cellByKey(screen, r, screen.CardTitleKey)
	if title == "" {
		title = r.ID()
	}
	body.WriteString(CardTitleStyle.Render(title))

	for _, key := range screen.CardFieldKeys {
		col, ok := columnFor(screen, key)
		if !ok {
			continue
		}
		value := col.CellValue(r)
		if value == "" {
			if !comfortable {
				continue
			}
			value = "-"
		}
		body.WriteString("\n")
		body.WriteString(LabelStyle.Render(col.Label + ": "))
		body.WriteString(ValueStyle.Render(value))
	}

	return body.String()
}

func columnFor(screen catalog.Screen, key string) (listview.Column, bool) {
	for _, col := range screen.View.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return listview.Column{}, false
}

func cellByKey(screen catalog.Screen, r listview.Record, key string) string {
	if col, ok := columnFor(screen, key); ok {
		return col.CellValue(r)
	}
	return ""
}
