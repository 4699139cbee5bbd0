// Package archive writes encoded symbols into a ZIP file, one PNG per symbol
// named after its code.
package archive

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

// MaxNameRunes caps the length of a sanitized entry name, extension excluded.
const MaxNameRunes = 50

// Sanitize maps a code to a file name stem: every rune that is not a letter
// or digit becomes "_" and the result is cut to MaxNameRunes runes.
func Sanitize(code string) string {
	var b strings.Builder
	n := 0
	for _, r := range code {
		if n == MaxNameRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		n++
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// Names returns the entry names for codes in order. Names that collide after
// sanitizing get a numeric suffix: ABC_123.png, ABC_123_2.png, ...
func Names(codes []string) []string {
	used := make(map[string]bool, len(codes))
	out := make([]string, len(codes))
	for i, code := range codes {
		stem := Sanitize(code)
		name := stem + ".png"
		for k := 2; used[name]; k++ {
			name = fmt.Sprintf("%s_%d.png", stem, k)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// Write writes a ZIP archive of symbols to w and returns the entry names.
func Write(w io.Writer, symbols []*symbol.Symbol) ([]string, error) {
	codes := make([]string, len(symbols))
	for i, s := range symbols {
		codes[i] = s.Code
	}
	names := Names(codes)

	zw := zip.NewWriter(w)
	now := time.Now()
	for i, s := range symbols {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     names[i],
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "add %s", names[i])
		}
		if _, err := f.Write(s.PNG); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", names[i])
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "finish archive")
	}
	return names, nil
}
