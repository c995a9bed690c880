package loader

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads raw cell values so that date cells arrive as Excel serial
// numbers rather than locale-formatted strings. GetRows keeps empty rows as
// empty slices, so slice index + 1 is the sheet row number.
func loadXLSX(path, sheet string) (Table, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "open %s", path)
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, errors.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	if idx, err := book.GetSheetIndex(sheet); err != nil || idx < 0 {
		return Table{}, errors.Errorf("%s: sheet %q not found", path, sheet)
	}

	raw, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, errors.Wrapf(err, "%s: read sheet %q", path, sheet)
	}

	headerIdx := -1
	for idx, record := range raw {
		if !blankRow(record) {
			headerIdx = idx
			break
		}
	}
	if headerIdx < 0 {
		return Table{}, errors.Errorf("%s: sheet %q is empty", path, sheet)
	}

	rows := make([][]string, 0, len(raw)-headerIdx-1)
	lines := make([]int, 0, len(raw)-headerIdx-1)
	for idx := headerIdx + 1; idx < len(raw); idx++ {
		if blankRow(raw[idx]) {
			continue
		}
		rows = append(rows, raw[idx])
		lines = append(lines, idx+1)
	}
	return newTable(path, raw[headerIdx], rows, lines), nil
}
