package tui

import "github.com/charmbracelet/lipgloss"

// Palette (256-color terminal codes).
//
//nolint:gochecknoglobals // Shared palette for every browse view.
var (
	ColorHeader   = lipgloss.Color("99")
	ColorAccent   = lipgloss.Color("205")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("252")
	ColorMuted    = lipgloss.Color("241")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorOK       = lipgloss.Color("42")
	ColorBorder   = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values, shared by all views.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	TabActiveStyle   = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Underline(true)
	TabInactiveStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	CardTitleStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	FilterFocusStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// Sort direction indicators.
const (
	IconSortAsc  = "↑"
	IconSortDesc = "↓"
)

// Layout constants.
const (
	defaultWidth  = 120
	defaultHeight = 40

	// borderPadding accounts for box borders when sizing to the terminal.
	borderPadding = 2

	minTableHeight = 5

	// chromeHeight is the vertical space the summary box, tab line, and
	// status bar take above and below the table.
	chromeHeight = 9

	searchInputCharLimit = 64
	searchInputWidth     = 40
)
