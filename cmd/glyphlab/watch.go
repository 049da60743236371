package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/glyphlab"
)

// fileWatcher reports changes to one file. Editors often replace files
// instead of writing them, so the parent directory is watched.
type fileWatcher struct {
	Changed <-chan struct{}

	w    *fsnotify.Watcher
	done chan struct{}
}

func watchFile(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	changed := make(chan struct{}, 1)
	fw := &fileWatcher{Changed: changed, w: w, done: make(chan struct{})}
	go fw.loop(abs, changed)
	glyphlab.Logger().Info("watching font", "path", abs)
	return fw, nil
}

func (fw *fileWatcher) loop(path string, changed chan<- struct{}) {
	defer close(fw.done)
	log := glyphlab.Logger()
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !relevant(ev.Op) {
				continue
			}
			log.Debug("font changed", "path", ev.Name, "op", ev.Op.String())
			// Coalesce bursts into one pending rebuild.
			select {
			case changed <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

// Close stops watching and waits for the event loop to exit.
func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
