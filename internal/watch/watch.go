package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mv/qmlhook/internal/walker"
)

// Event represents a settled change to a QML file.
type Event struct {
	Path string
	Type EventType
	Err  error
}

// EventType identifies the kind of file change.
type EventType int

const (
	EventModified EventType = iota
	EventCreated
)

// DefaultDebounce is how long a path must stay quiet before its event is
// delivered. Editors and the formatter itself write in bursts; without
// settling, every reformat would trigger another round.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes directory trees and reports QML file changes,
// coalescing bursts of writes into one event per path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher. A debounce of 0 or less uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Add watches a directory tree. The root must be an existing directory;
// a missing or unreadable root is an error so callers can fail setup
// instead of idling on nothing. Hidden and VCS subdirectories are
// skipped, unreadable ones too, and directories created later inside
// the tree are picked up as they appear.
func (w *Watcher) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Events returns the debounced event stream. The channel closes after
// Close is called.
func (w *Watcher) Events() <-chan Event {
	ch := make(chan Event, 64)
	go func() {
		defer close(ch)

		pending := make(map[string]Event)
		var timer *time.Timer
		var timerC <-chan time.Time

		note := func(path string, typ EventType) {
			// A create followed by writes is still a create.
			if prev, ok := pending[path]; ok && prev.Type == EventCreated {
				typ = EventCreated
			}
			pending[path] = Event{Path: path, Type: typ}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		}

		for {
			select {
			case <-w.done:
				return

			case fe, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				switch {
				case fe.Has(fsnotify.Create):
					if info, err := os.Stat(fe.Name); err == nil && info.IsDir() {
						if !skipDir(filepath.Base(fe.Name)) {
							if err := w.fsw.Add(fe.Name); err != nil {
								ch <- Event{Err: err}
							}
						}
						continue
					}
					if interesting(fe.Name) {
						note(fe.Name, EventCreated)
					}
				case fe.Has(fsnotify.Write):
					if interesting(fe.Name) {
						note(fe.Name, EventModified)
					}
				}
				// Removes and renames leave nothing to format.

			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				ch <- Event{Err: err}

			case <-timerC:
				for _, ev := range pending {
					ch <- ev
				}
				pending = make(map[string]Event)
				timer = nil
				timerC = nil
			}
		}
	}()
	return ch
}

// Close stops the watcher and releases resources. Safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// interesting selects QML files worth reacting to. Dotfiles are editor
// droppings (lock and swap files), never sources.
func interesting(path string) bool {
	base := filepath.Base(path)
	if len(base) == 0 || base[0] == '.' {
		return false
	}
	return walker.IsQML(base)
}

func skipDir(name string) bool {
	switch name {
	case ".git", ".svn", ".hg":
		return true
	}
	return len(name) > 0 && name[0] == '.'
}
