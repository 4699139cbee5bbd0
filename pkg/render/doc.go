// Package render holds the output sinks of a generated sheet.
//
// Two sinks are provided:
//
//   - [page]: a paginated PDF with every symbol drawn at its grid placement,
//     optional text labels and page numbers
//   - [archive]: a ZIP archive with one PNG per symbol named after its code
//
// Both take already encoded symbols; neither performs QR encoding.
//
//	stats, err := page.Render(w, layout, symbols, page.WithLabels())
//	names, err := archive.Write(w, symbols)
//
// [page]: github.com/matzehuels/qrsheet/pkg/render/page
// [archive]: github.com/matzehuels/qrsheet/pkg/render/archive
package render
