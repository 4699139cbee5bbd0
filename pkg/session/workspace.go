package session

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/observability"
)

// Workspace creates and removes session directories under Root and keeps the
// Registry in step.
type Workspace struct {
	Root     string
	Registry Registry

	now func() time.Time
}

// NewWorkspace creates root if needed. A nil registry selects the file
// registry for root.
func NewWorkspace(root string, reg Registry) (*Workspace, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "session root cannot be empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create session root %s", root)
	}
	if reg == nil {
		reg = NewFileRegistry(root)
	}
	return &Workspace{Root: root, Registry: reg, now: time.Now}, nil
}

// Dir returns the directory of session id.
func (w *Workspace) Dir(id string) string {
	return filepath.Join(w.Root, id)
}

// Create makes a new, empty session directory and registers it.
func (w *Workspace) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	dir := w.Dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create session directory")
	}

	created := w.clock()
	if err := w.Registry.Register(ctx, id, created); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "register session")
	}
	observability.Session().OnSessionCreated(ctx, id)
	return &Session{ID: id, Dir: dir, CreatedAt: created}, nil
}

// Open returns an existing session. A positive maxAge rejects sessions older
// than it with SESSION_EXPIRED.
func (w *Workspace) Open(ctx context.Context, id string, maxAge time.Duration) (*Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	created, ok, err := w.Registry.CreatedAt(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "look up session")
	}
	dir := w.Dir(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s files not found", id)
	}
	if maxAge > 0 && w.clock().Sub(created) > maxAge {
		return nil, errors.New(errors.ErrCodeSessionExpired, "session %s expired", id)
	}
	return &Session{ID: id, Dir: dir, CreatedAt: created}, nil
}

// Discard removes a session directory and its registry entry. It is best
// effort and only reports invalid ids.
func (w *Workspace) Discard(ctx context.Context, id string, cause error) error {
	if err := validateID(id); err != nil {
		return err
	}
	_ = os.RemoveAll(w.Dir(id))
	_ = w.Registry.Delete(ctx, id)
	observability.Session().OnSessionDiscarded(ctx, id, cause)
	return nil
}

// List returns the registered sessions, oldest first.
func (w *Workspace) List(ctx context.Context) ([]*Session, error) {
	entries, err := w.Registry.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list sessions")
	}
	out := make([]*Session, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Session{ID: e.ID, Dir: w.Dir(e.ID), CreatedAt: e.CreatedAt})
	}
	return out, nil
}

// validateID accepts only canonical UUIDs, the form Create generates.
func validateID(id string) error {
	if err := errors.ValidateSessionID(id); err != nil {
		return err
	}
	u, err := uuid.Parse(id)
	if err != nil || u.String() != id {
		return errors.New(errors.ErrCodeInvalidInput, "session id %q is not a session UUID", id)
	}
	return nil
}

func (w *Workspace) clock() time.Time {
	if w.now == nil {
		return time.Now()
	}
	return w.now()
}

// Close closes the registry.
func (w *Workspace) Close() error {
	return w.Registry.Close()
}
