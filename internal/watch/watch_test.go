package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "sub", "b.yaml")

	w := New([]string{a, "", b, a})

	assert.Equal(t, []string{a, b}, w.Files())
	assert.Equal(t, []string{dir, filepath.Join(dir, "sub")}, w.dirs)
}

func TestWithDebounceIgnoresNonPositive(t *testing.T) {
	w := New(nil, WithDebounce(0))
	assert.Equal(t, DefaultDebounce, w.debounce)

	w = New(nil, WithDebounce(time.Second))
	assert.Equal(t, time.Second, w.debounce)
}

func TestRunCallsActionOnChange(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, ".promptctl.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a: 1\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	calls := make(chan []string, 4)
	w := New([]string{watched}, WithDebounce(20*time.Millisecond))
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) error {
			calls <- changed
			return nil
		})
	}()

	// Keep writing until the watcher, which starts asynchronously, reports.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var got []string
loop:
	for {
		select {
		case got = <-calls:
			break loop
		case <-ticker.C:
			require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
			require.NoError(t, os.WriteFile(watched, []byte("a: 2\n"), 0644))
		case <-ctx.Done():
			t.Fatal("action was not called")
		}
	}

	assert.Equal(t, []string{watched}, got)
	cancel()
	assert.NoError(t, <-done)
}

func TestRunMissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing", "file.yaml")})
	err := w.Run(context.Background(), func([]string) error { return nil })
	assert.Error(t, err)
}
