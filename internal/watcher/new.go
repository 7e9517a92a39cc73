package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
)

// New creates a Watcher over watchDir. The handler is called inline from
// the watch loop, so it should only hand the file off, not process it.
func New(watchDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(watchDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		watchDir: watchDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}
