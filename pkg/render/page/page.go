// Package page renders encoded symbols onto PDF pages at the positions
// computed by the grid layout.
//
// Layout coordinates use a bottom-left origin with y growing upward. The PDF
// library works top-down, so every y is flipped against the page height
// before drawing.
package page

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/qrsheet/pkg/buildinfo"
	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

const (
	labelFont       = "Helvetica"
	labelFontSize   = 6
	labelOffset     = 10 // baseline distance below the symbol
	labelMaxRunes   = 15
	pageNumFontSize = 8
	pageNumInsetX   = 50
	pageNumInsetY   = 20
)

// Option configures PDF rendering.
type Option func(*renderer)

type renderer struct {
	labels      bool
	pageNumbers bool
	title       string
}

// WithLabels draws the code text under each symbol.
func WithLabels() Option {
	return func(r *renderer) { r.labels = true }
}

// WithPageNumbers draws "Page n/N" near the bottom right of every page.
func WithPageNumbers() Option {
	return func(r *renderer) { r.pageNumbers = true }
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(r *renderer) { r.title = title }
}

// Stats summarizes a rendered document.
type Stats struct {
	PerPage    int `json:"qr_per_page"`
	TotalPages int `json:"total_pages"`
	TotalCodes int `json:"total_qr_codes"`
}

// Render writes a PDF with one symbol per placement of l. symbols must hold
// exactly l.ItemCount entries in placement order.
func Render(w io.Writer, l grid.Layout, symbols []*symbol.Symbol, opts ...Option) (Stats, error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if len(symbols) != l.ItemCount {
		return Stats{}, errors.New(errors.ErrCodeInternal,
			"layout holds %d items but %d symbols were given", l.ItemCount, len(symbols))
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(buildinfo.Creator(), true)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	size := l.SymbolSize
	m := l.SymbolMargin

	for page := range l.TotalPages {
		pdf.AddPage()

		if r.pageNumbers {
			pdf.SetFont(labelFont, "", pageNumFontSize)
			pdf.Text(l.PageWidth-pageNumInsetX, l.PageHeight-pageNumInsetY,
				fmt.Sprintf("Page %d/%d", page+1, l.TotalPages))
		}

		for _, p := range l.PageItems(page) {
			s := symbols[p.Index]
			top := l.PageHeight - p.Y - size

			if m > 0 {
				pdf.Rect(p.X-m, top-m, size+2*m, size+2*m, "D")
			}

			name := fmt.Sprintf("qr_%d", p.Index)
			pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(s.PNG))
			pdf.ImageOptions(name, p.X, top, size, size, false, imgOpts, 0, "")

			if r.labels {
				text := tr(Label(s.Code))
				pdf.SetFont(labelFont, "", labelFontSize)
				tw := pdf.GetStringWidth(text)
				pdf.Text(p.X+(size-tw)/2, l.PageHeight-(p.Y-labelOffset), text)
			}
		}

		if err := pdf.Error(); err != nil {
			return Stats{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "render page %d", page+1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return Stats{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return Stats{
		PerPage:    l.ItemsPerPage,
		TotalPages: l.TotalPages,
		TotalCodes: l.ItemCount,
	}, nil
}

// Label returns the text drawn under a symbol: the code, cut to 15
// characters followed by "..." when longer.
func Label(code string) string {
	if utf8.RuneCountInString(code) <= labelMaxRunes {
		return code
	}
	return string([]rune(code)[:labelMaxRunes]) + "..."
}
