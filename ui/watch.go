package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// transcriptWatcher turns filesystem events on the transcript file into
// change notifications. The parent directory is watched instead of the
// file itself because editors commonly replace the file on save, which
// would silently drop a file-level watch.
type transcriptWatcher struct {
	fs      *fsnotify.Watcher
	changes chan struct{}
}

func watchTranscript(path string) (*transcriptWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve transcript path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &transcriptWatcher{
		fs:      fs,
		changes: make(chan struct{}, 1),
	}
	go w.run(abs)
	return w, nil
}

func (w *transcriptWatcher) run(path string) {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Name != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Coalesce bursts; one pending notification is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Debug("Transcript watcher error", "error", err)
		}
	}
}

// waitForChange blocks until the transcript changes, then reports it.
func (w *transcriptWatcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-w.changes
		return transcriptChangedMsg{}
	}
}

func (w *transcriptWatcher) Close() error {
	return w.fs.Close()
}
