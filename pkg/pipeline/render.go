package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/observability"
	"github.com/matzehuels/qrsheet/pkg/render/archive"
	"github.com/matzehuels/qrsheet/pkg/render/page"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

// writeFile creates path and streams fn's output into it. It returns the
// number of bytes written.
func writeFile(path string, fn func(io.Writer) error) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorage, err, "create %s", filepath.Base(path))
	}
	cw := &countingWriter{w: f}
	if err := fn(cw); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorage, err, "close %s", filepath.Base(path))
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeSymbols stores every symbol image as <dir>/symbols/qr_<i>.png.
func writeSymbols(dir string, symbols []*symbol.Symbol) error {
	symDir := filepath.Join(dir, SymbolDir)
	if err := os.MkdirAll(symDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create symbol directory")
	}
	for _, s := range symbols {
		path := filepath.Join(symDir, fmt.Sprintf("qr_%d.png", s.Index))
		if err := os.WriteFile(path, s.PNG, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "write symbol %d", s.Index)
		}
		s.Path = path
	}
	return nil
}

// renderPDF writes the page document and returns its stats.
func renderPDF(ctx context.Context, path string, l grid.Layout, symbols []*symbol.Symbol, opts Options) (page.Stats, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, ArtifactPDF)

	var stats page.Stats
	n, err := writeFile(path, func(w io.Writer) error {
		var err error
		stats, err = page.Render(w, l, symbols, opts.pageOptions()...)
		return err
	})
	observability.Pipeline().OnRenderComplete(ctx, ArtifactPDF, n, time.Since(start), err)
	return stats, err
}

// renderZIP writes the archive and returns its entry names.
func renderZIP(ctx context.Context, path string, symbols []*symbol.Symbol) ([]string, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, ArtifactZIP)

	var names []string
	n, err := writeFile(path, func(w io.Writer) error {
		var err error
		names, err = archive.Write(w, symbols)
		return err
	})
	observability.Pipeline().OnRenderComplete(ctx, ArtifactZIP, n, time.Since(start), err)
	return names, err
}
