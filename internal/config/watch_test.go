package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcher_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("grid_rows: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := make(chan string, 1)
	go w.Run(ctx, reload)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("grid_rows: 2\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case reason := <-reload:
		if reason == "" {
			t.Fatalf("expected a reason")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}

	select {
	case <-reload:
		t.Fatalf("expected writes to be coalesced into one reload")
	case <-time.After(2 * reloadDebounce):
	}
}
