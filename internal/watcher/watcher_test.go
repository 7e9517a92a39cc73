package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/drop/llamada.mp3", true},
		{"/drop/llamada.MP3", true},
		{"/drop/reunion.m4a", true},
		{"/drop/nota.ogg", true},
		{"/drop/nota.flac", true},
		{"/drop/video.mp4", false},
		{"/drop/notas.txt", false},
		{"/drop/sin-extension", false},
	}

	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherDetectsNewAudioFile(t *testing.T) {
	dir := t.TempDir()
	detected := make(chan string, 1)

	w, err := New(dir, func(ctx context.Context, path string) error {
		select {
		case detected <- path:
		default:
		}
		return nil
	}, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watch loop a moment to come up before creating the file.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "nueva.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-detected:
		if got != path {
			t.Errorf("detected %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("audio file was never handed to the handler")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	detected := make(chan string, 1)

	w, err := New(dir, func(ctx context.Context, path string) error {
		detected <- path
		return nil
	}, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-detected:
		t.Errorf("handler called for %q, want nothing", got)
	case <-time.After(1 * time.Second):
	}
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-existe"), func(context.Context, string) error { return nil }, logger.Discard())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
