package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("links: []\n"), 0644))

	const debounce = 200 * time.Millisecond
	changes := make(chan struct{}, 10)
	w := New(path, func() { changes <- struct{}{} }).WithDebounce(debounce)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	burst := func() {
		for i := 0; i < 3; i++ {
			require.NoError(t, os.WriteFile(path, []byte("links: []\n"), 0644))
		}
	}
	waitChange := func() {
		t.Helper()
		select {
		case <-changes:
		case <-time.After(5 * time.Second):
			t.Fatal("expected change callback")
		}
	}
	assertQuiet := func() {
		t.Helper()
		select {
		case <-changes:
			t.Fatal("burst of writes produced more than one callback")
		case <-time.After(3 * debounce):
		}
	}

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	burst()
	waitChange()
	assertQuiet()

	// a later burst fires again
	burst()
	waitChange()
	assertQuiet()

	t.Run("other files are ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(other, []byte("still ignored"), 0644))
		select {
		case <-changes:
			t.Fatal("write to another file triggered a callback")
		case <-time.After(3 * debounce):
		}
	})

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent", "links.yaml"), func() {})
	require.Error(t, w.Watch(context.Background()))
}
