package symbol

import (
	"context"
	"encoding/json"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/qrsheet/pkg/cache"
	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/observability"
)

// Symbol is an encoded and rasterized code.
type Symbol struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
	Info
	Size  int    `json:"size"`  // requested size in points
	Scale int    `json:"scale"` // pixels per module
	PNG   []byte `json:"png"`

	// Path is set once the image is written to disk.
	Path string `json:"-"`
}

// Options controls symbol encoding.
type Options struct {
	Size    int   // requested symbol size in points, drives the pixel scale
	Level   Level // level used when a standard symbol is needed
	Workers int   // parallel encoders; <= 0 means GOMAXPROCS
}

// Encoder encodes codes into symbols with caching.
//
// Multiple goroutines may share one Encoder.
type Encoder struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long encoded symbols stay cached. Zero means cache.TTLSymbol.
	TTL time.Duration
}

// NewEncoder creates an encoder. Nil arguments fall back to a NullCache, the
// default keyer and the default logger.
func NewEncoder(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Encoder {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Encoder{Cache: c, Keyer: keyer, Logger: logger}
}

// Encode encodes a single code.
func (e *Encoder) Encode(ctx context.Context, code string, opts Options) (*Symbol, error) {
	key := e.Keyer.SymbolKey(code, cache.SymbolKeyOpts{
		Size:   opts.Size,
		Level:  opts.Level.String(),
		Border: Border,
	})

	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		var s Symbol
		if err := json.Unmarshal(data, &s); err == nil && len(s.PNG) > 0 {
			observability.Cache().OnCacheHit(ctx, "symbol")
			return &s, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "symbol")

	m, info, err := Select(code, opts.Level)
	if err != nil {
		return nil, err
	}
	scale := Scale(opts.Size)
	png, err := Rasterize(m, scale)
	if err != nil {
		return nil, err
	}
	s := &Symbol{
		Code:  code,
		Info:  info,
		Size:  opts.Size,
		Scale: scale,
		PNG:   png,
	}

	if data, err := json.Marshal(s); err == nil {
		ttl := e.TTL
		if ttl <= 0 {
			ttl = cache.TTLSymbol
		}
		if err := e.Cache.Set(ctx, key, data, ttl); err != nil {
			e.Logger.Debug("cache write failed", "code", code, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "symbol", len(data))
		}
	}
	return s, nil
}

// EncodeAll encodes codes in parallel. The result preserves input order and
// each symbol's Index is its position in codes. The first failure cancels the
// remaining work.
func (e *Encoder) EncodeAll(ctx context.Context, codes []string, opts Options) ([]*Symbol, error) {
	start := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, len(codes))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]*Symbol, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, code := range codes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := e.Encode(gctx, code, opts)
			if err != nil {
				return errors.Wrap(errors.ErrCodeEncodeFailed, err, "code %d (%q)", i+1, code)
			}
			s.Index = i
			out[i] = s
			return nil
		})
	}
	err := g.Wait()

	micro := 0
	if err == nil {
		for _, s := range out {
			if s.Tier == TierMicro {
				micro++
			}
		}
	}
	observability.Pipeline().OnEncodeComplete(ctx, len(codes), micro, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	e.Logger.Debug("encoded symbols",
		"count", len(codes),
		"micro", micro,
		"standard", len(codes)-micro,
		"duration", time.Since(start))
	return out, nil
}
