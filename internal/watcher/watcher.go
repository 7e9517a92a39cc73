// Package watcher monitors a drop folder and feeds new audio files into
// the transcription queue.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
)

// settleDelay gives the OS time to finish writing a file that was just
// created before we hand it off.
const settleDelay = 500 * time.Millisecond

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".webm", ".flac", ".aac"}

type implWatcher struct {
	watchDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start blocks monitoring the watch directory until ctx is cancelled or
// the underlying watcher fails.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "watching %s for new audio files", w.watchDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "folder watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isAudioFile(event.Name) {
				w.logger.Debug(ctx, "ignoring non-audio file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "new audio file detected: %s", event.Name)
			time.Sleep(settleDelay)

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "handling %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file system watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range audioExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
