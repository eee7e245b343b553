// Package tui implements the interactive browse screen: a Bubble Tea
// model that walks the entity screens, renders records as a table or as
// cards, and drives the list engine from the keyboard.
package tui

// ViewState identifies which screen the browser is showing.
type ViewState int

// Browser view states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

// String returns the state name for logs and tests.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}
