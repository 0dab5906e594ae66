package logbuf

import (
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals on C whenever the set of files in a watched log directory
// changes (create/remove/rename). Content changes are not reported; the log
// list only needs to know when sources appear or disappear.
type Watcher struct {
	C    <-chan struct{}
	w    *fsnotify.Watcher
	done chan struct{}
}

// WatchDir starts watching dir. A missing directory returns a nil Watcher
// (nothing to watch) rather than an error.
func WatchDir(dir string) (*Watcher, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	return &Watcher{C: ch, w: fw, done: done}, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	close(w.done)
	return w.w.Close()
}
