package tables

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the codec registry in step with a directory of table files.
// A table file that is written or created is reloaded and registered again.
// Removing a file leaves its codec registered.
type Watcher struct {
	dir string
	fs  *fsnotify.Watcher
}

// Watch registers every table in dir and starts watching it. Call Run to
// apply changes and Close to stop.
func Watch(dir string) (*Watcher, error) {
	if _, err := RegisterDir(dir); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{dir: dir, fs: fw}, nil
}

// Run applies file changes until ctx is done or the watcher is closed.
// Reload failures are emitted as SignalTableFailed and do not stop Run.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if err := w.handle(event); err != nil {
				emitTableFailed(ctx, event.Name, err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			emitTableFailed(ctx, w.dir, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) error {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}
	if _, err := CodecFor(event.Name); err != nil {
		return nil
	}
	t, err := LoadFile(event.Name)
	if err != nil {
		return err
	}
	return Register(t)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
