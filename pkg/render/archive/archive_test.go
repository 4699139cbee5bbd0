package archive

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qrsheet/pkg/symbol"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ABC-123", "ABC_123"},
		{"ABC/123", "ABC_123"},
		{"plain42", "plain42"},
		{"https://example.com/a?b=c", "https___example_com_a_b_c"},
		{"Grüße", "Grüße"},
		{"../../etc/passwd", "______etc_passwd"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
		{strings.Repeat("é", 60), strings.Repeat("é", 50)},
		{"", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.code))
		})
	}
}

func TestNamesDeduplicates(t *testing.T) {
	got := Names([]string{"ABC-123", "ABC/123", "ABC 123", "other"})
	assert.Equal(t, []string{"ABC_123.png", "ABC_123_2.png", "ABC_123_3.png", "other.png"}, got)
}

func TestNamesSuffixDoesNotShadowRealCode(t *testing.T) {
	got := Names([]string{"A_2", "A-", "A_", "A/2"})
	assert.Equal(t, []string{"A_2.png", "A_.png", "A__2.png", "A_2_2.png"}, got)
}

func TestWrite(t *testing.T) {
	syms := []*symbol.Symbol{
		{Code: "ABC-123", PNG: []byte("one")},
		{Code: "ABC/123", PNG: []byte("two")},
	}

	var buf bytes.Buffer
	names, err := Write(&buf, syms)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC_123.png", "ABC_123_2.png"}, names)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	for i, f := range zr.File {
		assert.Equal(t, names[i], f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, syms[i].PNG, data)
	}
}
