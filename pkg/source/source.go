// Package source extracts ordered lists of codes from spreadsheets and builds
// single-code payloads (URLs and contact cards).
//
// Spreadsheets are read as a table whose first row is the header. A column is
// selected by 0-based index; its values are trimmed and blank cells dropped.
// Supported formats are CSV, XLSX (via excelize) and legacy XLS.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// Options selects the codes read from a spreadsheet.
type Options struct {
	Column  int    // 0-based column index
	MaxRows int    // limit after filtering blanks; <= 0 means no limit
	Sheet   string // worksheet name; empty selects the first sheet
}

// Table is a spreadsheet read as rows of strings. Rows may be ragged.
type Table struct {
	Header []string
	Rows   [][]string
}

// reader reads up to limit rows (header included) of one sheet. A negative
// limit reads every row.
type reader func(path, sheet string, limit int) ([][]string, error)

var readers = map[string]reader{
	".csv":  readCSV,
	".xlsx": readXLSX,
	".xls":  readXLS,
}

func open(path, sheet string, limit int) ([][]string, error) {
	if err := errors.ValidateFilename(path); err != nil {
		return nil, err
	}
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedFile, "unsupported file %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	rows, err := read(path, sheet, limit)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", filepath.Base(path))
	}
	return rows, nil
}

// ReadColumn returns the non-blank, trimmed values of one column, skipping the
// header row. An empty result is not an error.
func ReadColumn(path string, opts Options) ([]string, error) {
	rows, err := open(path, opts.Sheet, -1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySource, "%s has no header row", filepath.Base(path))
	}
	if opts.Column < 0 || opts.Column >= len(rows[0]) {
		return nil, errors.New(errors.ErrCodeColumnOutOfRange,
			"column index %d out of range: file has %d columns", opts.Column, len(rows[0]))
	}

	var codes []string
	for _, row := range rows[1:] {
		if opts.Column >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[opts.Column])
		if v == "" {
			continue
		}
		codes = append(codes, v)
		if opts.MaxRows > 0 && len(codes) == opts.MaxRows {
			break
		}
	}
	return codes, nil
}

// Preview returns the header and the first n data rows of a spreadsheet.
func Preview(path, sheet string, n int) (*Table, error) {
	limit := -1
	if n >= 0 {
		limit = n + 1
	}
	rows, err := open(path, sheet, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySource, "%s has no header row", filepath.Base(path))
	}
	t := &Table{Header: rows[0], Rows: rows[1:]}
	for i, h := range t.Header {
		t.Header[i] = strings.TrimSpace(h)
	}
	return t, nil
}
