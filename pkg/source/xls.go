package source

import (
	"github.com/extrame/xls"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

func readXLS(path, sheet string, limit int) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, nil
	}

	ws := wb.GetSheet(0)
	if sheet != "" {
		ws = nil
		var names []string
		for i := range wb.NumSheets() {
			s := wb.GetSheet(i)
			if s == nil {
				continue
			}
			names = append(names, s.Name)
			if s.Name == sheet {
				ws = s
				break
			}
		}
		if ws == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sheet %q not found (have %v)", sheet, names)
		}
	}
	if ws == nil {
		return nil, nil
	}

	var out [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		if limit >= 0 && len(out) >= limit {
			break
		}
		row := sheetRow(ws, i)
		if row == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, rowCells(row))
	}
	return out, nil
}

// maxXLSColumns is the BIFF8 column limit.
const maxXLSColumns = 256

// sheetRow returns nil for rows without any record; WorkSheet.Row panics on
// those.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// rowCells reads a row up to its last cell. Rows written without a ROW record
// report no extent, so every column is read and trailing blanks dropped.
func rowCells(row *xls.Row) []string {
	n := row.LastCol()
	if n <= 0 {
		n = maxXLSColumns
	}
	cells := make([]string, n)
	last := -1
	for j := range cells {
		cells[j] = row.Col(j)
		if cells[j] != "" {
			last = j
		}
	}
	if row.LastCol() <= 0 {
		cells = cells[:last+1]
	}
	return cells
}
