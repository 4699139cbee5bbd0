package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and session events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLayoutComplete(_ context.Context, items, pages int, err error) {
	h.logger.Debug("layout", "items", items, "pages", pages, "error", err)
}

func (h *logHooks) OnEncodeStart(_ context.Context, count int) {
	h.logger.Debug("encoding", "count", count)
}

func (h *logHooks) OnEncodeComplete(_ context.Context, count, micro int, d time.Duration, err error) {
	h.logger.Debug("encoded", "count", count, "micro", micro, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int64, d time.Duration, err error) {
	h.logger.Debug("rendered", "format", format, "bytes", size, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnSessionCreated(_ context.Context, id string) {
	h.logger.Debug("session created", "id", id)
}

func (h *logHooks) OnSessionDiscarded(_ context.Context, id string, cause error) {
	h.logger.Debug("session discarded", "id", id, "cause", cause)
}

func (h *logHooks) OnSweep(_ context.Context, removed int, d time.Duration) {
	h.logger.Debug("sweep", "removed", removed, "duration", d)
}
