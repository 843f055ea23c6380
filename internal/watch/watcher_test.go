package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_RebuildsAfterChange(t *testing.T) {
	root := t.TempDir()

	var rebuilds atomic.Int32
	built := make(chan struct{}, 8)
	w := New(root, Config{QuietWindow: 50 * time.Millisecond, MaxDelay: time.Second}, func(context.Context) error {
		rebuilds.Add(1)
		built <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before producing events.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("# Doc\n"), 0o644))

	select {
	case <-built:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild was not triggered")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.GreaterOrEqual(t, rebuilds.Load(), int32(1))
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	root := t.TempDir()

	built := make(chan struct{}, 8)
	w := New(root, Config{QuietWindow: 200 * time.Millisecond, MaxDelay: 5 * time.Second}, func(context.Context) error {
		built <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("# Doc\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-built:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild was not triggered")
	}

	// The burst collapses into a single rebuild within the quiet window.
	select {
	case <-built:
		t.Fatal("burst should have coalesced into one rebuild")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	w := New(t.TempDir(), Config{}, func(context.Context) error { return nil })
	require.Equal(t, DefaultConfig().QuietWindow, w.cfg.QuietWindow)
	require.Equal(t, DefaultConfig().MaxDelay, w.cfg.MaxDelay)
}
