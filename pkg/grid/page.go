package grid

import (
	"sort"
	"strings"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Size is a page size in PDF points (1/72 inch).
type Size struct {
	Name   string
	Width  float64
	Height float64
}

// Standard portrait page sizes.
var (
	A4     = Size{Name: "a4", Width: 595.2755905511812, Height: 841.8897637795277}
	A5     = Size{Name: "a5", Width: 419.52755905511816, Height: 595.2755905511812}
	Letter = Size{Name: "letter", Width: 612, Height: 792}
	Legal  = Size{Name: "legal", Width: 612, Height: 1008}
)

var pageSizes = map[string]Size{
	A4.Name:     A4,
	A5.Name:     A5,
	Letter.Name: Letter,
	Legal.Name:  Legal,
}

// DefaultPage is used when no page size is requested.
const DefaultPage = "a4"

// PageSize looks up a page size by case-insensitive name.
func PageSize(name string) (Size, error) {
	if s, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return Size{}, errors.New(errors.ErrCodeInvalidInput,
		"unknown page size %q (must be one of: %s)", name, strings.Join(PageSizeNames(), ", "))
}

// PageSizeNames returns the supported page size names, sorted.
func PageSizeNames() []string {
	names := make([]string, 0, len(pageSizes))
	for n := range pageSizes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Params builds layout parameters for this page.
func (s Size) Params(pageMargin, symbolSize, symbolMargin float64) Params {
	return Params{
		PageWidth:    s.Width,
		PageHeight:   s.Height,
		PageMargin:   pageMargin,
		SymbolSize:   symbolSize,
		SymbolMargin: symbolMargin,
	}
}
