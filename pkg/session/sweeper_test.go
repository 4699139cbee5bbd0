package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func TestSweep(t *testing.T) {
	for _, tc := range []struct {
		name string
		reg  func(root string) Registry
	}{
		{"memory", func(string) Registry { return NewMemoryRegistry() }},
		{"file", func(root string) Registry { return NewFileRegistry(root) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			root := t.TempDir()
			ws, err := NewWorkspace(root, tc.reg(root))
			require.NoError(t, err)

			start := time.Now()
			ws.now = func() time.Time { return start.Add(-2 * time.Hour) }
			old, err := ws.Create(ctx)
			require.NoError(t, err)

			ws.now = func() time.Time { return start }
			fresh, err := ws.Create(ctx)
			require.NoError(t, err)

			// unregistered directory with an old mtime
			orphan := filepath.Join(root, "orphan")
			require.NoError(t, os.Mkdir(orphan, 0755))
			past := start.Add(-3 * time.Hour)
			require.NoError(t, os.Chtimes(orphan, past, past))

			// unregistered but recent directory is kept
			recent := filepath.Join(root, "recent")
			require.NoError(t, os.Mkdir(recent, 0755))

			removed := NewSweeper(ws, quietLogger()).Sweep(ctx, time.Hour)
			assert.Equal(t, 2, removed)
			assert.NoDirExists(t, old.Dir)
			assert.NoDirExists(t, orphan)
			assert.DirExists(t, fresh.Dir)
			assert.DirExists(t, recent)

			list, err := ws.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, fresh.ID, list[0].ID)
		})
	}
}

func TestSweepToleratesVanishedDirectory(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, NewMemoryRegistry())

	start := time.Now()
	ws.now = func() time.Time { return start.Add(-2 * time.Hour) }
	sess, err := ws.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(sess.Dir))

	ws.now = func() time.Time { return start }
	assert.Equal(t, 1, NewSweeper(ws, quietLogger()).Sweep(ctx, time.Hour))
}

func TestSweepMissingRoot(t *testing.T) {
	ws := newTestWorkspace(t, NewMemoryRegistry())
	require.NoError(t, os.RemoveAll(ws.Root))
	assert.Equal(t, 0, NewSweeper(ws, quietLogger()).Sweep(context.Background(), time.Hour))
}

func TestRunStopsOnCancel(t *testing.T) {
	ws := newTestWorkspace(t, NewMemoryRegistry())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewSweeper(ws, quietLogger()).Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunDefaultsInterval(t *testing.T) {
	ws := newTestWorkspace(t, NewMemoryRegistry())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewSweeper(ws, quietLogger()).Run(ctx, 0, 0)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSweepCorruptMarker(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ws, err := NewWorkspace(root, NewFileRegistry(root))
	require.NoError(t, err)

	start := time.Now()
	stale, err := ws.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(stale.Dir, MarkerFile), []byte("{not json"), 0600))
	past := start.Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(stale.Dir, past, past))

	recent, err := ws.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(recent.Dir, MarkerFile), nil, 0600))

	removed := NewSweeper(ws, quietLogger()).Sweep(ctx, time.Hour)
	assert.Equal(t, 1, removed)
	assert.NoDirExists(t, stale.Dir)
	assert.DirExists(t, recent.Dir)
}
