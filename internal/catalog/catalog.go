// Package catalog declares the entity screens renodesk ships with:
// Requests (incoming leads), Quotes, and Projects. Each screen is a
// listview configuration plus the card/detail layout hints the browser
// needs. The engine itself stays generic; everything entity-specific
// lives here.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/renodesk/renodesk/internal/config"
	"github.com/renodesk/renodesk/internal/listview"
)

// ErrUnknownEntity indicates a name outside the shipped catalog.
var ErrUnknownEntity = errors.New("unknown entity")

// Entity names, also used as workspace table keys and preference-key
// segments.
const (
	EntityRequests = "requests"
	EntityQuotes   = "quotes"
	EntityProjects = "projects"
)

// Screen bundles one entity's list-view configuration with its cards-mode
// and summary layout.
type Screen struct {
	View listview.Config

	// CardTitleKey is the column whose value heads each card.
	CardTitleKey string
	// CardFieldKeys are the columns shown as card body lines, in order.
	CardFieldKeys []string

	// StatusField feeds the summary header's per-status counts.
	StatusField string
	// AmountField, when set, feeds the summary header's total.
	AmountField string
}

// Entities lists the shipped entity names in display order.
func Entities() []string {
	return []string{EntityRequests, EntityQuotes, EntityProjects}
}

// ByEntity returns the screen for an entity name, case-insensitively.
func ByEntity(entity string, ui config.UIConfig) (Screen, error) {
	switch strings.ToLower(strings.TrimSpace(entity)) {
	case EntityRequests:
		return Requests(ui), nil
	case EntityQuotes:
		return Quotes(ui), nil
	case EntityProjects:
		return Projects(ui), nil
	default:
		return Screen{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
}

// propertyField reads one key out of a record's nested property object.
func propertyField(key string) listview.Accessor {
	return func(r listview.Record) any {
		prop, ok := r.Field("property").(map[string]any)
		if !ok {
			return nil
		}
		return prop[key]
	}
}

// addressValue joins the property's street address and city the way the
// back office reads them ("7 Pine Rd, Barrie"). Falls back to a top-level
// address field for records imported from flat CSV exports.
func addressValue(r listview.Record) any {
	prop, ok := r.Field("property").(map[string]any)
	if !ok {
		return r.Field("address")
	}

	street, _ := prop["address"].(string)
	city, _ := prop["city"].(string)
	switch {
	case street == "" && city == "":
		return nil
	case city == "":
		return street
	case street == "":
		return city
	default:
		return street + ", " + city
	}
}

// Requests is the incoming-leads screen.
func Requests(ui config.UIConfig) Screen {
	return Screen{
		View: listview.Config{
			Entity: EntityRequests,
			Title:  "Requests",
			Columns: []listview.Column{
				listview.NewColumn("address", "Address").WithAccessor(addressValue).NotHideable(),
				listview.NewColumn("status", "Status"),
				listview.NewColumn("assignedTo", "Assigned To"),
				listview.NewColumn("leadSource", "Lead Source"),
				listview.NewColumn("homeownerName", "Homeowner"),
				listview.NewColumn("budget", "Budget").WithAccessor(func(r listview.Record) any {
					return moneyValue(r.Field("budget"))
				}),
				listview.NewColumn("message", "Message").NotSortable(),
				listview.NewColumn("createdAt", "Created"),
			},
			Filters: []listview.FilterField{
				{Field: "status", Label: "Status"},
				{Field: "leadSource", Label: "Lead Source"},
				{Field: "assignedTo", Label: "Assigned To"},
			},
			SearchFields:     []string{"message", "homeownerName", "agentName", "assignedTo", "officeNotes"},
			DefaultSortKey:   "createdAt",
			DefaultSortDir:   listview.Descending,
			KeyPrefix:        ui.KeyPrefix,
			MobileBreakpoint: ui.MobileBreakpoint,
			WideBreakpoint:   ui.WideBreakpoint,
			CardPageSize:     ui.CardPageSize,
		},
		CardTitleKey:  "address",
		CardFieldKeys: []string{"status", "assignedTo", "leadSource", "budget", "createdAt"},
		StatusField:   "status",
		AmountField:   "budget",
	}
}

// Quotes is the outgoing-quotes screen.
func Quotes(ui config.UIConfig) Screen {
	return Screen{
		View: listview.Config{
			Entity: EntityQuotes,
			Title:  "Quotes",
			Columns: []listview.Column{
				listview.NewColumn("address", "Address").WithAccessor(addressValue).NotHideable(),
				listview.NewColumn("status", "Status"),
				listview.NewColumn("totalAmount", "Total").WithAccessor(func(r listview.Record) any {
					return moneyValue(r.Field("totalAmount"))
				}),
				listview.NewColumn("agentName", "Agent"),
				listview.NewColumn("brokerage", "Brokerage"),
				listview.NewColumn("validUntil", "Valid Until"),
				listview.NewColumn("createdAt", "Created"),
			},
			Filters: []listview.FilterField{
				{Field: "status", Label: "Status"},
				{Field: "brokerage", Label: "Brokerage"},
			},
			SearchFields:     []string{"agentName", "brokerage", "requestId"},
			DefaultSortKey:   "createdAt",
			DefaultSortDir:   listview.Descending,
			KeyPrefix:        ui.KeyPrefix,
			MobileBreakpoint: ui.MobileBreakpoint,
			WideBreakpoint:   ui.WideBreakpoint,
			CardPageSize:     ui.CardPageSize,
		},
		CardTitleKey:  "address",
		CardFieldKeys: []string{"status", "totalAmount", "agentName", "validUntil"},
		StatusField:   "status",
		AmountField:   "totalAmount",
	}
}

// Projects is the active-work screen.
func Projects(ui config.UIConfig) Screen {
	return Screen{
		View: listview.Config{
			Entity: EntityProjects,
			Title:  "Projects",
			Columns: []listview.Column{
				listview.NewColumn("address", "Address").WithAccessor(addressValue).NotHideable(),
				listview.NewColumn("status", "Status"),
				listview.NewColumn("assignedTo", "Project Lead"),
				listview.NewColumn("budget", "Budget").WithAccessor(func(r listview.Record) any {
					return moneyValue(r.Field("budget"))
				}),
				listview.NewColumn("bedrooms", "Beds").WithAccessor(propertyField("bedrooms")),
				listview.NewColumn("sizeSqft", "Sq Ft").WithAccessor(propertyField("sizeSqft")),
				listview.NewColumn("startDate", "Start"),
				listview.NewColumn("endDate", "End"),
			},
			Filters: []listview.FilterField{
				{Field: "status", Label: "Status"},
				{Field: "assignedTo", Label: "Project Lead"},
			},
			SearchFields:     []string{"assignedTo", "homeownerName", "officeNotes"},
			DefaultSortKey:   "startDate",
			DefaultSortDir:   listview.Descending,
			KeyPrefix:        ui.KeyPrefix,
			MobileBreakpoint: ui.MobileBreakpoint,
			WideBreakpoint:   ui.WideBreakpoint,
			CardPageSize:     ui.CardPageSize,
		},
		CardTitleKey:  "address",
		CardFieldKeys: []string{"status", "assignedTo", "budget", "startDate", "endDate"},
		StatusField:   "status",
		AmountField:   "budget",
	}
}
