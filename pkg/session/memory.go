package session

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRegistry is an in-process Registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]time.Time)}
}

func (r *MemoryRegistry) Register(ctx context.Context, id string, createdAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = createdAt
	return nil
}

func (r *MemoryRegistry) CreatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[id]
	return t, ok, nil
}

func (r *MemoryRegistry) Expired(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, t := range r.entries {
		if t.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRegistry) List(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for id, t := range r.entries {
		out = append(out, Entry{ID: id, CreatedAt: t})
	}
	sortEntries(out)
	return out, nil
}

func (r *MemoryRegistry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *MemoryRegistry) Close() error { return nil }

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

var _ Registry = (*MemoryRegistry)(nil)
