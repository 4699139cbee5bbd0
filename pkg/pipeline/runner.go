package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsheet/pkg/cache"
	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/session"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

// Runner executes generation requests.
//
// The Runner is stateless apart from its collaborators. Multiple goroutines
// can safely use the same Runner; each request gets its own session.
type Runner struct {
	Workspace *session.Workspace
	Encoder   *symbol.Encoder
	Logger    *log.Logger
}

// NewRunner creates a runner that writes into ws.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(ws *session.Workspace, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Workspace: ws,
		Encoder:   symbol.NewEncoder(c, keyer, logger),
		Logger:    logger,
	}
}

// Execute turns codes into a PDF and/or ZIP archive inside a new session.
//
// Validation and layout failures happen before the session directory is
// created. Any later failure discards the session.
func (r *Runner) Execute(ctx context.Context, codes []string, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	codes, err = CleanCodes(codes)
	if err != nil {
		return nil, err
	}

	result = &Result{Artifacts: make(map[string]string)}
	result.Stats.TotalCodes = len(codes)

	// Stage 1: Layout
	var layout grid.Layout
	if opts.WantsPDF() {
		layoutStart := time.Now()
		layout, err = r.ComputeLayout(ctx, len(codes), opts)
		if err != nil {
			return nil, err
		}
		result.Layout = &layout
		result.Stats.LayoutTime = time.Since(layoutStart)
		logger.Debug("computed layout",
			"columns", layout.Columns,
			"rows", layout.Rows,
			"pages", layout.TotalPages)
	}

	// Stage 2: Session
	sess, err := r.Workspace.Create(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			logger.Warn("discarding session", "id", sess.ID, "error", err)
			_ = r.Workspace.Discard(context.WithoutCancel(ctx), sess.ID, err)
			result = nil
		}
	}()
	result.SessionID = sess.ID
	result.Dir = sess.Dir

	// Stage 3: Encode
	encodeStart := time.Now()
	symbols, err := r.Encoder.EncodeAll(ctx, codes, opts.SymbolOptions())
	if err != nil {
		return nil, err
	}
	if err = writeSymbols(sess.Dir, symbols); err != nil {
		return nil, err
	}
	result.Symbols = symbols
	result.Stats.EncodeTime = time.Since(encodeStart)
	for _, s := range symbols {
		if s.Tier == symbol.TierMicro {
			result.Stats.MicroCount++
		}
	}
	result.Stats.StandardCount = len(symbols) - result.Stats.MicroCount

	logger.Info("encoded symbols",
		"count", len(symbols),
		"micro", result.Stats.MicroCount,
		"duration", result.Stats.EncodeTime)

	// Stage 4: Render
	renderStart := time.Now()
	if opts.WantsPDF() {
		path := filepath.Join(sess.Dir, FilePDF)
		stats, err := renderPDF(ctx, path, layout, symbols, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[ArtifactPDF] = path
		result.Stats.PerPage = stats.PerPage
		result.Stats.TotalPages = stats.TotalPages
	}
	if opts.WantsZIP() {
		path := filepath.Join(sess.Dir, FileZIP)
		names, err := renderZIP(ctx, path, symbols)
		if err != nil {
			return nil, err
		}
		result.Artifacts[ArtifactZIP] = path
		result.ArchiveNames = names
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"output", opts.Output,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Single encodes one payload (a URL or contact card) into qr_code.png inside
// a new session. Only the size and error level of opts apply.
func (r *Runner) Single(ctx context.Context, payload string, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, errors.New(errors.ErrCodeEmptySource, "nothing to encode")
	}

	sess, err := r.Workspace.Create(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = r.Workspace.Discard(context.WithoutCancel(ctx), sess.ID, err)
			result = nil
		}
	}()

	start := time.Now()
	s, err := r.Encoder.Encode(ctx, payload, opts.SymbolOptions())
	if err != nil {
		return nil, err
	}
	path := filepath.Join(sess.Dir, FileSingle)
	if err = os.WriteFile(path, s.PNG, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "write %s", FileSingle)
	}
	s.Path = path

	stats := Stats{TotalCodes: 1, EncodeTime: time.Since(start)}
	if s.Tier == symbol.TierMicro {
		stats.MicroCount = 1
	} else {
		stats.StandardCount = 1
	}
	return &Result{
		SessionID: sess.ID,
		Dir:       sess.Dir,
		Artifacts: map[string]string{ArtifactPNG: path},
		Symbols:   []*symbol.Symbol{s},
		Stats:     stats,
	}, nil
}

// Close releases resources held by the runner (the symbol cache).
func (r *Runner) Close() error {
	if r.Encoder != nil && r.Encoder.Cache != nil {
		return r.Encoder.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
