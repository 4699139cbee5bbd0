// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults are no-ops,
// so nothing is recorded unless an application registers its own
// implementation at startup. Backends such as Prometheus or OpenTelemetry can
// be plugged in without the core packages importing them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnEncodeStart(ctx, len(codes))
//	// ... encode symbols ...
//	observability.Pipeline().OnEncodeComplete(ctx, len(codes), micro, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from sheet generation.
type PipelineHooks interface {
	// Layout events
	OnLayoutComplete(ctx context.Context, items, pages int, err error)

	// Encode events
	OnEncodeStart(ctx context.Context, count int)
	OnEncodeComplete(ctx context.Context, count, micro int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events about session workspaces.
type SessionHooks interface {
	// OnSessionCreated records a new workspace.
	OnSessionCreated(ctx context.Context, id string)

	// OnSessionDiscarded records a workspace removed after a failed run.
	OnSessionDiscarded(ctx context.Context, id string, cause error)

	// OnSweep records one sweeper pass.
	OnSweep(ctx context.Context, removed int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, error)                     {}
func (NoopPipelineHooks) OnEncodeStart(context.Context, int)                                    {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, int, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int64, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionCreated(context.Context, string)          {}
func (NoopSessionHooks) OnSessionDiscarded(context.Context, string, error) {}
func (NoopSessionHooks) OnSweep(context.Context, int, time.Duration)       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	sessionHooks  SessionHooks  = NoopSessionHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	sessionHooks = NoopSessionHooks{}
}
