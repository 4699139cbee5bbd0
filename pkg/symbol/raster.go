package symbol

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Border is the quiet zone, in modules, drawn around every symbol.
const Border = 1

// Scale returns the pixels per module for a requested symbol size.
func Scale(size int) int {
	return max(1, size/25)
}

// ImageSide returns the pixel side of a rasterized symbol.
func ImageSide(modules, scale int) int {
	return (modules + 2*Border) * scale
}

// Rasterize draws m as a black on white PNG.
func Rasterize(m *Matrix, scale int) ([]byte, error) {
	side := ImageSide(m.Size(), scale)
	dc := gg.NewContext(side, side)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	s := float64(scale)
	for r := range m.Size() {
		for c := range m.Size() {
			if m.Dark(r, c) {
				dc.DrawRectangle(float64(c+Border)*s, float64(r+Border)*s, s, s)
			}
		}
	}
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}
