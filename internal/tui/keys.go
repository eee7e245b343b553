package tui

// Key strings as reported by tea.KeyMsg.String().
const (
	keyQuit        = "q"
	keyCtrlC       = "ctrl+c"
	keyEnter       = "enter"
	keyEsc         = "esc"
	keySlash       = "/"
	keyTab         = "tab"
	keyShiftTab    = "shift+tab"
	keySortKey     = "s"
	keySortDir     = "S"
	keyViewMode    = "v"
	keyDensity     = "d"
	keyFilterCycle = "f"
	keyFilterClear = "F"
	keyLeft        = "left"
	keyRight       = "right"
	keyPgUp        = "pgup"
	keyPgDown      = "pgdown"
	keyUp          = "up"
	keyDown        = "down"
)
