package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

func newTestWorkspace(t *testing.T, reg Registry) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(t.TempDir(), reg)
	require.NoError(t, err)
	return ws
}

func TestWorkspaceCreateOpenDiscard(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, nil)

	sess, err := ws.Create(ctx)
	require.NoError(t, err)
	assert.DirExists(t, sess.Dir)
	assert.Equal(t, filepath.Join(ws.Root, sess.ID), sess.Dir)

	opened, err := ws.Open(ctx, sess.ID, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sess.Dir, opened.Dir)

	list, err := ws.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sess.ID, list[0].ID)

	require.NoError(t, os.WriteFile(filepath.Join(sess.Dir, "qr_codes.pdf"), []byte("x"), 0644))
	require.NoError(t, ws.Discard(ctx, sess.ID, nil))
	assert.NoDirExists(t, sess.Dir)

	_, err = ws.Open(ctx, sess.ID, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeSessionNotFound))
}

func TestWorkspaceUniqueIDs(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, NewMemoryRegistry())

	seen := map[string]bool{}
	for range 20 {
		sess, err := ws.Create(ctx)
		require.NoError(t, err)
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestWorkspaceOpenExpired(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, NewMemoryRegistry())

	sess, err := ws.Create(ctx)
	require.NoError(t, err)

	ws.now = func() time.Time { return sess.CreatedAt.Add(2 * time.Hour) }
	_, err = ws.Open(ctx, sess.ID, time.Hour)
	assert.True(t, errors.Is(err, errors.ErrCodeSessionExpired))

	// no max age means never expired
	_, err = ws.Open(ctx, sess.ID, 0)
	assert.NoError(t, err)
}

func TestWorkspaceRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, nil)

	other, err := ws.Create(ctx)
	require.NoError(t, err)

	ids := []string{
		"", ".", "..", "./", "../etc", "a/b", `a\b`, "abc",
		"{" + other.ID + "}", "urn:uuid:" + other.ID,
		strings.ToUpper(other.ID),
	}
	for _, id := range ids {
		_, err := ws.Open(ctx, id, 0)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "Open(%q)", id)
		assert.Error(t, ws.Discard(ctx, id, nil), "Discard(%q)", id)
	}

	assert.DirExists(t, ws.Root)
	assert.DirExists(t, other.Dir)
}

func TestNewWorkspaceEmptyRoot(t *testing.T) {
	_, err := NewWorkspace("", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}
