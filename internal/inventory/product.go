// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

/*
Package inventory implements the product catalog and its activity trail.

The catalog is in-memory by contract: it is the demo backend's store of
record and resets on restart. Every mutation appends exactly one
human-readable entry to the activity log, newest first, which is what the
dashboard's recent-activity widget renders.
*/
package inventory

// # Domain Entities

// ProductStatus is the publication state of a catalog entry.
type ProductStatus string

const (
	// StatusDraft entries are invisible to the storefront; new products
	// start here.
	StatusDraft ProductStatus = "draft"

	StatusPublished ProductStatus = "published"
)

// Valid reports whether the status is a known literal.
func (s ProductStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// StatusNames returns the known status literals, for validation messages.
func StatusNames() []string {
	return []string{string(StatusDraft), string(StatusPublished)}
}

// Product represents one catalog entry.
//
// IDs are small integers assigned monotonically (max existing + 1).
// LastUpdated is a calendar date, not a timestamp — the dashboard renders
// it verbatim.
type Product struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	Views       int           `json:"views"`
	Supplier    string        `json:"supplier"`
	LastUpdated string        `json:"last_updated"`
}

// DateLayout is the calendar-date format of [Product.LastUpdated].
const DateLayout = "2006-01-02"

// # Activity Trail

// ActivityType classifies an activity log entry.
type ActivityType string

const (
	ActivityAdd    ActivityType = "add"
	ActivityUpdate ActivityType = "update"
	ActivityDelete ActivityType = "delete"
	ActivityAlert  ActivityType = "alert"
)

// ActivityEntry is one line of the dashboard's recent-activity widget.
//
// Time is a display label ("Just now", "2 hours ago"), not a machine
// timestamp; the widget shows it as-is.
type ActivityEntry struct {
	ID      int64        `json:"id"`
	Type    ActivityType `json:"type"`
	Message string       `json:"message"`
	Time    string       `json:"time"`
	Icon    string       `json:"icon"`
}

// # Field Identifiers

// Global field names for validation in the inventory domain.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldStatus   = "status"
	FieldSupplier = "supplier"
)
