// Package pagination provides the shared list-command flags: page
// selection, sort expressions, field filters, and text search.
//
// Every entity list command (requests, quotes, projects) binds the same
// Params, validates them the same way, and feeds them to a list engine.
// Meta describes the resulting page for JSON output.
package pagination
