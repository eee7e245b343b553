package catalog

import (
	"github.com/google/uuid"

	"github.com/renodesk/renodesk/internal/listview"
)

// SeedRecords returns sample records for entity, for trying the console
// without a backend export. Ids are fresh UUIDs on every call.
func SeedRecords(entity string) ([]listview.Record, error) {
	switch entity {
	case EntityRequests:
		return seedRequests(), nil
	case EntityQuotes:
		return seedQuotes(), nil
	case EntityProjects:
		return seedProjects(), nil
	default:
		return nil, ErrUnknownEntity
	}
}

func property(address, city string) map[string]any {
	return map[string]any{"address": address, "city": city}
}

func seedRequests() []listview.Record {
	return []listview.Record{
		{
			"id":            uuid.NewString(),
			"property":      property("12 Oak St", "Portland"),
			"status":        "New",
			"homeownerName": "Dana Whitfield",
			"leadSource":    "Website",
			"budget":        250000.0,
			"message":       "Full kitchen renovation, open to moving the island.",
			"createdAt":     "2024-05-14T09:15:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("840 Maple Ave", "Beaverton"),
			"status":        "Contacted",
			"homeownerName": "Luis Romero",
			"agentName":     "Priya Shah",
			"leadSource":    "Referral",
			"assignedTo":    "Morgan Ellis",
			"budget":        90000.0,
			"message":       "Primary bath remodel, walk-in shower instead of tub.",
			"createdAt":     "2024-05-11T16:40:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("77 Birchwood Dr", "Lake Oswego"),
			"status":        "Quoted",
			"homeownerName": "Ava Lindqvist",
			"agentName":     "Tom Okafor",
			"leadSource":    "Zillow",
			"assignedTo":    "Morgan Ellis",
			"budget":        410000.0,
			"message":       "Whole-home update before listing, kitchen plus two baths.",
			"officeNotes":   "Agent wants quote before June open house.",
			"createdAt":     "2024-05-08T11:05:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("3150 SE Hawthorne Blvd", "Portland"),
			"status":        "New",
			"homeownerName": "Ken Yamada",
			"leadSource":    "Instagram",
			"budget":        65000.0,
			"message":       "Basement conversion to a rental unit, needs egress window.",
			"createdAt":     "2024-05-07T08:30:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("18 Cedar Loop", "Tigard"),
			"status":        "Archived",
			"homeownerName": "Ruth Adler",
			"leadSource":    "Website",
			"assignedTo":    "Sam Beckett",
			"message":       "Deck repair only. Went with another contractor.",
			"createdAt":     "2024-04-22T14:55:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("509 NW Lovejoy St", "Portland"),
			"status":        "Quoted",
			"homeownerName": "Marcus Bell",
			"agentName":     "Priya Shah",
			"leadSource":    "Referral",
			"assignedTo":    "Sam Beckett",
			"budget":        175000.0,
			"message":       "Condo kitchen and flooring, HOA approval already in hand.",
			"createdAt":     "2024-04-18T10:20:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("2211 Alder Ct", "Hillsboro"),
			"status":        "Contacted",
			"homeownerName": "Sofia Marino",
			"leadSource":    "Zillow",
			"budget":        120000.0,
			"message":       "Garage to ADU conversion, wants rough estimate first.",
			"createdAt":     "2024-04-15T13:10:00Z",
		},
		{
			"id":            uuid.NewString(),
			"property":      property("96 Sunset Ter", "West Linn"),
			"status":        "Archived",
			"homeownerName": "George Han",
			"agentName":     "Tom Okafor",
			"leadSource":    "Website",
			"message":       "Duplicate of an earlier request.",
			"createdAt":     "2024-03-30T09:00:00Z",
		},
	}
}

func seedQuotes() []listview.Record {
	return []listview.Record{
		{
			"id":          uuid.NewString(),
			"property":    property("77 Birchwood Dr", "Lake Oswego"),
			"status":      "Sent",
			"totalAmount": 398500.0,
			"agentName":   "Tom Okafor",
			"brokerage":   "Compass",
			"validUntil":  "2024-06-15",
			"createdAt":   "2024-05-10T15:00:00Z",
		},
		{
			"id":          uuid.NewString(),
			"property":    property("509 NW Lovejoy St", "Portland"),
			"status":      "Accepted",
			"totalAmount": 168000.0,
			"agentName":   "Priya Shah",
			"brokerage":   "Keller Williams",
			"validUntil":  "2024-05-31",
			"createdAt":   "2024-04-25T10:45:00Z",
		},
		{
			"id":          uuid.NewString(),
			"property":    property("840 Maple Ave", "Beaverton"),
			"status":      "Draft",
			"totalAmount": 84200.0,
			"agentName":   "Priya Shah",
			"brokerage":   "Keller Williams",
			"createdAt":   "2024-05-13T09:30:00Z",
		},
		{
			"id":          uuid.NewString(),
			"property":    property("4410 SE Division St", "Portland"),
			"status":      "Declined",
			"totalAmount": 52750.0,
			"agentName":   "Erin Castillo",
			"brokerage":   "RE/MAX",
			"validUntil":  "2024-04-30",
			"createdAt":   "2024-04-02T12:20:00Z",
		},
		{
			"id":          uuid.NewString(),
			"property":    property("1005 Willamette Falls Dr", "Oregon City"),
			"status":      "Sent",
			"totalAmount": 230900.0,
			"agentName":   "Erin Castillo",
			"brokerage":   "RE/MAX",
			"validUntil":  "2024-06-01",
			"createdAt":   "2024-05-02T17:10:00Z",
		},
		{
			"id":          uuid.NewString(),
			"property":    property("67 Pine Hollow Rd", "Sherwood"),
			"status":      "Draft",
			"totalAmount": 143000.0,
			"agentName":   "Tom Okafor",
			"brokerage":   "Compass",
			"createdAt":   "2024-05-15T08:05:00Z",
		},
	}
}

func seedProjects() []listview.Record {
	return []listview.Record{
		{
			"id":         uuid.NewString(),
			"property":   property("509 NW Lovejoy St", "Portland"),
			"status":     "In Progress",
			"assignedTo": "Sam Beckett",
			"budget":     168000.0,
			"bedrooms":   2,
			"sizeSqft":   1150,
			"startDate":  "2024-05-06",
			"endDate":    "2024-07-26",
		},
		{
			"id":         uuid.NewString(),
			"property":   property("301 Elm Ridge Way", "Tualatin"),
			"status":     "Planning",
			"assignedTo": "Morgan Ellis",
			"budget":     315000.0,
			"bedrooms":   4,
			"sizeSqft":   2680,
			"startDate":  "2024-06-17",
		},
		{
			"id":         uuid.NewString(),
			"property":   property("88 Riverbend Ln", "Milwaukie"),
			"status":     "Completed",
			"assignedTo": "Sam Beckett",
			"budget":     97500.0,
			"bedrooms":   3,
			"sizeSqft":   1710,
			"startDate":  "2024-01-08",
			"endDate":    "2024-03-29",
		},
		{
			"id":        uuid.NewString(),
			"property":  property("1420 NE Alberta St", "Portland"),
			"status":    "On Hold",
			"budget":    205000.0,
			"bedrooms":  3,
			"sizeSqft":  1980,
			"startDate": "2024-04-01",
		},
		{
			"id":         uuid.NewString(),
			"property":   property("52 Camas Meadow Ct", "Happy Valley"),
			"status":     "In Progress",
			"assignedTo": "Erin Castillo",
			"budget":     450000.0,
			"bedrooms":   5,
			"sizeSqft":   3420,
			"startDate":  "2024-03-11",
			"endDate":    "2024-08-30",
		},
	}
}
