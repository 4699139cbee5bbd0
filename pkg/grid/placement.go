package grid

// Placement is the position of one item on its page.
type Placement struct {
	Index int     `json:"index"`
	Page  int     `json:"page"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Place returns the placement of item i (0-based). Items fill a page row by
// row, left to right, and pages are filled in input order.
func (l Layout) Place(i int) Placement {
	page := i / l.ItemsPerPage
	local := i % l.ItemsPerPage
	row := local / l.Columns
	col := local % l.Columns

	s := l.SymbolSize
	x := l.PageMargin + l.HorizontalSpacing + float64(col)*(s+l.HorizontalSpacing)
	y := l.PageHeight - (l.PageMargin + l.VerticalSpacing + float64(row+1)*s + float64(row)*l.VerticalSpacing)

	return Placement{Index: i, Page: page, Row: row, Col: col, X: x, Y: y}
}

// PageItems returns the placements on the given page, in input order.
// Out-of-range pages yield nil.
func (l Layout) PageItems(page int) []Placement {
	if page < 0 || page >= l.TotalPages {
		return nil
	}
	start := page * l.ItemsPerPage
	end := min(start+l.ItemsPerPage, l.ItemCount)

	out := make([]Placement, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, l.Place(i))
	}
	return out
}

// Placements returns every placement across all pages.
func (l Layout) Placements() []Placement {
	out := make([]Placement, 0, l.ItemCount)
	for i := 0; i < l.ItemCount; i++ {
		out = append(out, l.Place(i))
	}
	return out
}
