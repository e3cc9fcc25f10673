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

// startWatch runs Run in the background and waits until it is watching.
func startWatch(t *testing.T, dir, file string, onChange func()) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, dir, file, onChange) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("Run did not return after cancel")
		}
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	return cancel
}

func TestRun_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exoplanet-data.csv")
	require.NoError(t, os.WriteFile(path, []byte("pl_name,hostname\n"), 0o644))

	var calls atomic.Int32
	startWatch(t, dir, "exoplanet-data.csv", func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(path, []byte("pl_name,hostname\nKepler-22 b,Kepler-22\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestRun_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exoplanet-data.csv")

	var calls atomic.Int32
	startWatch(t, dir, "exoplanet-data.csv", func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("pl_name,hostname\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(3 * Debounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	startWatch(t, dir, "exoplanet-data.csv", func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(3 * Debounce)
	assert.Zero(t, calls.Load())
}

func TestRun_MissingDir(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "missing"), "a.csv", func() {})
	assert.Error(t, err)
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		resource string
		wantDir  string
		wantFile string
	}{
		{"top level", "public", "/exoplanet-data.csv", "public", "exoplanet-data.csv"},
		{"nested", "public", "/data/x.csv", filepath.Join("public", "data"), "x.csv"},
		{"no leading slash", "public", "data/x.csv", filepath.Join("public", "data"), "x.csv"},
		{"dot segments", "public", "/data/../archive/./x.csv", filepath.Join("public", "archive"), "x.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, file := Target(tt.root, tt.resource)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantFile, file)
		})
	}
}

func TestRun_NestedSourcePath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))

	dir, file := Target(root, "/data/x.csv")

	var calls atomic.Int32
	startWatch(t, dir, file, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "x.csv"), []byte("pl_name,hostname\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}
