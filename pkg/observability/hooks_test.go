package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutComplete(ctx, 200, 2, nil)
	p.OnEncodeStart(ctx, 200)
	p.OnEncodeComplete(ctx, 200, 180, time.Second, nil)
	p.OnRenderStart(ctx, "pdf")
	p.OnRenderComplete(ctx, "pdf", 4096, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "symbol")
	c.OnCacheMiss(ctx, "symbol")
	c.OnCacheSet(ctx, "symbol", 1024)

	s := NoopSessionHooks{}
	s.OnSessionCreated(ctx, "id")
	s.OnSessionDiscarded(ctx, "id", nil)
	s.OnSweep(ctx, 3, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Session().(NoopSessionHooks); !ok {
		t.Error("Session() should return NoopSessionHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customSession := &testSessionHooks{}
	SetSessionHooks(customSession)
	if Session() != customSession {
		t.Error("SetSessionHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Session().(NoopSessionHooks); !ok {
		t.Error("Reset() should restore NoopSessionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testSessionHooks{}
	SetSessionHooks(h)
	Session().OnSweep(context.Background(), 4, time.Millisecond)
	Session().OnSweep(context.Background(), 1, time.Millisecond)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.swept != 5 {
		t.Errorf("swept = %d, want 5", h.swept)
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }

type testCacheHooks struct{ NoopCacheHooks }

type testSessionHooks struct {
	NoopSessionHooks
	mu    sync.Mutex
	swept int
}

func (h *testSessionHooks) OnSweep(_ context.Context, removed int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.swept += removed
}
