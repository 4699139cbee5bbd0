package page

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

func encode(t *testing.T, codes ...string) []*symbol.Symbol {
	t.Helper()
	syms, err := symbol.NewEncoder(nil, nil, nil).EncodeAll(context.Background(), codes,
		symbol.Options{Size: 50, Level: symbol.LevelL})
	require.NoError(t, err)
	return syms
}

func TestRender(t *testing.T) {
	codes := make([]string, 0, 200)
	for i := range 200 {
		codes = append(codes, strings.Repeat("9", i%12+1))
	}
	syms := encode(t, codes...)

	l, err := grid.Compute(grid.Params{
		PageWidth: 595, PageHeight: 842, PageMargin: 5, SymbolSize: 50,
	}, len(syms))
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Render(&buf, l, syms, WithLabels(), WithPageNumbers(), WithTitle("labels"))
	require.NoError(t, err)

	assert.Equal(t, Stats{PerPage: 176, TotalPages: 2, TotalCodes: 200}, stats)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Count 2")
}

func TestRenderWithSymbolMargin(t *testing.T) {
	syms := encode(t, "A", "B", "C")
	l, err := grid.Compute(grid.A5.Params(10, 60, 4), len(syms))
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := Render(&buf, l, syms)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPages)
	assert.Equal(t, 3, stats.TotalCodes)
}

func TestRenderCountMismatch(t *testing.T) {
	syms := encode(t, "A")
	l, err := grid.Compute(grid.A4.Params(5, 50, 0), 2)
	require.NoError(t, err)

	_, err = Render(&bytes.Buffer{}, l, syms)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ABC-123", "ABC-123"},
		{"123456789012345", "123456789012345"},
		{"1234567890123456", "123456789012345..."},
		{"ÄÖÜäöüßÄÖÜäöüßÄÖ", "ÄÖÜäöüßÄÖÜäöüßÄ..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.code), tt.code)
	}
}
