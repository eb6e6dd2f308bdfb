// Package watch re-reads a file every time it is written.
package watch

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// File calls onChange with the contents of path once, then again after every
// write, until ctx is done. A file that is briefly unreadable, as happens
// while an editor replaces it, is skipped until the next event.
func File(ctx context.Context, path string, onChange func(content string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	onChange(string(content))

	log := logrus.WithField("path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.WithField("op", ev.Op.String()).Debug("file event")
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// Editors that save by renaming drop the inotify watch.
				if err := watcher.Add(path); err != nil {
					log.WithError(err).Debug("file is gone, waiting for it to come back")
					continue
				}
			} else if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			content, err := os.ReadFile(path)
			if err != nil {
				log.WithError(err).Warn("failed to read watched file")
				continue
			}
			onChange(string(content))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watching file")
		}
	}
}
