package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/renodesk/renodesk/internal/logging"
)

// Debounce tuning. Export writers tend to produce bursts of events per
// file, so changes are coalesced before the browser reloads.
const (
	watchDebounce = 500 * time.Millisecond
	watchPollTick = 100 * time.Millisecond
)

// Watcher surfaces export-file changes in a directory as Bubble Tea
// messages, debounced so one save triggers one reload.
type Watcher struct {
	fs     *fsnotify.Watcher
	dir    string
	events chan struct{}
	ctx    context.Context
}

// NewWatcher starts watching dir for export file changes.
func NewWatcher(ctx context.Context, dir string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fs:     fs,
		dir:    dir,
		events: make(chan struct{}, 1),
		ctx:    ctx,
	}
	go w.watchLoop()
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// WaitForChange returns a command that delivers the next debounced change.
// Re-arm it after every dataChangedMsg.
func (w *Watcher) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.events; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}

// isExportFile reports whether a changed path is worth a reload.
func isExportFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv":
		return true
	default:
		return false
	}
}

func (w *Watcher) watchLoop() {
	defer close(w.events)
	log := logging.FromContext(w.ctx)

	ticker := time.NewTicker(watchPollTick)
	defer ticker.Stop()

	var lastEvent time.Time
	pending := false

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isExportFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = true
				lastEvent = time.Now()
			}

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= watchDebounce {
				pending = false
				select {
				case w.events <- struct{}{}:
				default:
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn().
				Ctx(w.ctx).
				Str("component", "tui").
				Str("dir", w.dir).
				Err(err).
				Msg("export watcher error")
		}
	}
}
