package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MarkerFile is the name of the file the file registry keeps in every
// session directory.
const MarkerFile = "session.json"

// FileRegistry stores each session's creation time in a marker file inside
// its directory, so the registry survives process restarts without any
// external service.
type FileRegistry struct {
	mu   sync.RWMutex
	root string
}

// NewFileRegistry creates a registry for session directories under root.
func NewFileRegistry(root string) *FileRegistry {
	return &FileRegistry{root: root}
}

func (r *FileRegistry) markerPath(id string) string {
	return filepath.Join(r.root, id, MarkerFile)
}

func (r *FileRegistry) Register(ctx context.Context, id string, createdAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(Entry{ID: id, CreatedAt: createdAt}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	path := r.markerPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (r *FileRegistry) read(id string) (Entry, bool, error) {
	data, err := os.ReadFile(r.markerPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("read session file: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("parse session: %w", err)
	}
	return e, true, nil
}

func (r *FileRegistry) CreatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok, err := r.read(id)
	return e.CreatedAt, ok, err
}

func (r *FileRegistry) Expired(ctx context.Context, cutoff time.Time) ([]string, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.CreatedAt.Before(cutoff) {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

// List scans the root directory. A directory whose marker cannot be read is
// listed with its modification time as the creation time.
func (r *FileRegistry) List(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dirs, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session root: %w", err)
	}

	var out []Entry
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		e, ok, err := r.read(d.Name())
		if err != nil {
			info, ierr := d.Info()
			if ierr != nil {
				continue
			}
			e, ok = Entry{CreatedAt: info.ModTime()}, true
		}
		if !ok {
			continue
		}
		e.ID = d.Name()
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (r *FileRegistry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.markerPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (r *FileRegistry) Close() error { return nil }

// Root returns the directory holding the session directories.
func (r *FileRegistry) Root() string {
	return r.root
}

var _ Registry = (*FileRegistry)(nil)
