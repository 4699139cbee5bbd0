package session

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsheet/pkg/observability"
)

// Sweeper deletes session directories older than a maximum age.
//
// Sweeping runs independently of in-flight requests. Directories may vanish
// or still be in use while a sweep runs, so every deletion is best effort and
// failures are only logged.
type Sweeper struct {
	ws     *Workspace
	logger *log.Logger
}

// NewSweeper creates a sweeper for ws. A nil logger selects the default.
func NewSweeper(ws *Workspace, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{ws: ws, logger: logger}
}

// Sweep removes registered sessions created more than maxAge ago and
// directories under the root whose modification time is older than maxAge
// when no registry entry for them can be read. It returns the number of sessions removed.
func (s *Sweeper) Sweep(ctx context.Context, maxAge time.Duration) int {
	start := time.Now()
	cutoff := s.ws.clock().Add(-maxAge)
	removed := 0

	ids, err := s.ws.Registry.Expired(ctx, cutoff)
	if err != nil {
		s.logger.Warn("list expired sessions", "error", err)
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if err := os.RemoveAll(s.ws.Dir(id)); err != nil {
			s.logger.Debug("remove session", "id", id, "error", err)
		}
		_ = s.ws.Registry.Delete(ctx, id)
		removed++
	}

	removed += s.sweepOrphans(ctx, cutoff)

	observability.Session().OnSweep(ctx, removed, time.Since(start))
	if removed > 0 {
		s.logger.Info("swept sessions", "removed", removed, "max_age", maxAge)
	}
	return removed
}

func (s *Sweeper) sweepOrphans(ctx context.Context, cutoff time.Time) int {
	entries, err := os.ReadDir(s.ws.Root)
	if err != nil {
		return 0
	}
	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if !e.IsDir() {
			continue
		}
		// an entry that cannot be read ages by mtime like an unregistered one
		_, ok, err := s.ws.Registry.CreatedAt(ctx, e.Name())
		if err == nil && ok {
			continue
		}
		if err != nil {
			s.logger.Debug("unreadable session entry", "dir", e.Name(), "error", err)
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.ws.Root, e.Name())); err != nil {
			s.logger.Debug("remove orphan", "dir", e.Name(), "error", err)
			continue
		}
		_ = s.ws.Registry.Delete(ctx, e.Name())
		removed++
	}
	return removed
}

// Run sweeps once immediately and then every interval until ctx is done.
// A non-positive interval selects DefaultSweepInterval.
func (s *Sweeper) Run(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s.Sweep(ctx, maxAge)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx, maxAge)
		}
	}
}
