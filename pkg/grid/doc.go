// Package grid computes how fixed-size QR symbols are tiled onto fixed-size
// pages.
//
// # Overview
//
// Every symbol in a request shares one size, so the layout reduces to a
// closed-form computation over the page and margin dimensions:
//
//   - Columns and rows: how many cells (symbol plus its own margin) fit in the
//     page area left after the page margin
//   - Spacing: the leftover width and height distributed as equal gutters
//   - Pagination: items per page and the number of pages for an item count
//
// # Even Spacing
//
// Leftover space is split into columns+1 horizontal gutters and rows+1
// vertical gutters. There is a gutter before the first and after the last
// symbol of every row and column, on top of the page margin:
//
//	|margin|gap|sym|gap|sym|gap|margin|
//
// This edge gutter is part of the output format; removing it would shift
// every symbol on the page.
//
// # Coordinates
//
// Placements use page coordinates with the origin at the bottom-left corner
// and Y growing upward. (X, Y) is the bottom-left corner of the symbol.
// Renderers that draw from the top-left must convert:
//
//	top := layout.PageHeight - p.Y - layout.SymbolSize
//
// # Usage
//
//	l, err := grid.Compute(grid.Params{
//	    PageWidth:  grid.A4.Width,
//	    PageHeight: grid.A4.Height,
//	    PageMargin: 5,
//	    SymbolSize: 50,
//	}, len(codes))
//	if err != nil {
//	    return err // INVALID_MARGIN or SYMBOL_TOO_LARGE
//	}
//	for page := 0; page < l.TotalPages; page++ {
//	    for _, p := range l.PageItems(page) {
//	        draw(codes[p.Index], p.X, p.Y)
//	    }
//	}
//
// Compute is pure and safe to call concurrently.
package grid
