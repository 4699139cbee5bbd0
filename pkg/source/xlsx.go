package source

import (
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

func readXLSX(path, sheet string, limit int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	name := sheets[0]
	if sheet != "" {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sheet %q not found (have %v)", sheet, sheets)
		}
		name = sheet
	}

	if limit < 0 {
		return f.GetRows(name)
	}

	rows, err := f.Rows(name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for len(out) < limit && rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		out = append(out, cols)
	}
	return out, rows.Error()
}
