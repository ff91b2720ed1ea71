package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tempora/tempora/internal/util"
)

// Watcher re-reads the config file when it changes on disk, so a live view
// picks up a new default window or timezone without restarting.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan *Config
}

func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		path = DefaultPath()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace config files by
	// rename, which drops a direct file watch.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsWatcher,
		path:    path,
		changes: make(chan *Config, 1),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				util.LogWarnf("Ignoring config change: %v", err)
				continue
			}
			select {
			case w.changes <- cfg:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Config watch error: " + err.Error())
		}
	}
}

// Changes delivers each successfully re-read config.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
