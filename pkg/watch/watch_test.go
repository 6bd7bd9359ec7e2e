package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesAndFilters(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "symkeeper.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[symlinks]\n"), 0644))

	w, err := New([]string{cfg, ""}, 100*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	// unrelated file in the same directory
	require.NoError(t, os.WriteFile(filepath.Join(dir, "symkeeper.lock"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())

	// a burst of writes is one run
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(cfg, []byte("[symlinks]\n# edit\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ErrorsDoNotStopWatching(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "symkeeper.toml")

	w, err := New([]string{cfg}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go func() {
		_ = w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return assert.AnError
		})
	}()

	// file created after the watch started
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(cfg, []byte("b"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "symkeeper.toml")}, time.Second)
	assert.Error(t, err)
}
