package grid

import (
	"math"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Params are the page and symbol dimensions a layout is computed from.
// All values share one unit (PDF points in practice).
type Params struct {
	PageWidth    float64 `json:"page_width"`
	PageHeight   float64 `json:"page_height"`
	PageMargin   float64 `json:"page_margin"`
	SymbolSize   float64 `json:"symbol_size"`
	SymbolMargin float64 `json:"symbol_margin"`
}

// EffectiveWidth is the page width minus the margin on both sides.
func (p Params) EffectiveWidth() float64 { return p.PageWidth - 2*p.PageMargin }

// EffectiveHeight is the page height minus the margin on both sides.
func (p Params) EffectiveHeight() float64 { return p.PageHeight - 2*p.PageMargin }

// CellSize is the symbol size plus its individual margin on both sides.
func (p Params) CellSize() float64 { return p.SymbolSize + 2*p.SymbolMargin }

// Layout is the computed grid for one request.
type Layout struct {
	Params

	Columns           int     `json:"columns"`
	Rows              int     `json:"rows"`
	ItemsPerPage      int     `json:"items_per_page"`
	TotalPages        int     `json:"total_pages"`
	ItemCount         int     `json:"item_count"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
}

// Compute derives the grid for itemCount symbols.
//
// It fails with INVALID_MARGIN when the page margin leaves no drawable area and
// with SYMBOL_TOO_LARGE when not even one cell fits in either direction.
// Negative counts, non-positive symbol sizes and NaN or infinite dimensions
// are INVALID_INPUT; a NaN or infinite page margin is INVALID_MARGIN.
func Compute(p Params, itemCount int) (Layout, error) {
	if itemCount < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "item count cannot be negative: %d", itemCount)
	}
	if !finite(p.PageWidth, p.PageHeight, p.SymbolSize, p.SymbolMargin) {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"page and symbol dimensions must be finite numbers")
	}
	if !finite(p.PageMargin) {
		return Layout{}, errors.New(errors.ErrCodeInvalidMargin, "page margin must be a finite number: %g", p.PageMargin)
	}
	if p.SymbolSize <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "symbol size must be positive: %g", p.SymbolSize)
	}
	if p.SymbolMargin < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "symbol margin cannot be negative: %g", p.SymbolMargin)
	}

	effW, effH := p.EffectiveWidth(), p.EffectiveHeight()
	if effW <= 0 || effH <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidMargin,
			"page margin %g leaves no printable area on a %gx%g page", p.PageMargin, p.PageWidth, p.PageHeight)
	}

	cell := p.CellSize()
	cols := int(math.Floor(effW / cell))
	rows := int(math.Floor(effH / cell))
	if cols < 1 || rows < 1 {
		return Layout{}, errors.New(errors.ErrCodeSymbolTooLarge,
			"symbol cell %g does not fit in the %gx%g printable area", cell, effW, effH)
	}

	perPage := cols * rows
	return Layout{
		Params:            p,
		Columns:           cols,
		Rows:              rows,
		ItemsPerPage:      perPage,
		TotalPages:        (itemCount + perPage - 1) / perPage,
		ItemCount:         itemCount,
		HorizontalSpacing: (effW - float64(cols)*p.SymbolSize) / float64(cols+1),
		VerticalSpacing:   (effH - float64(rows)*p.SymbolSize) / float64(rows+1),
	}, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
