package loader

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/surveyq/table"
)

// readXLSX reads one worksheet of an Excel workbook. The first row is the
// header. Raw cell values are used so number formats do not leak into the
// data ("25" rather than "25.00").
func readXLSX(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return fromRecords(rows[0], rows[1:]), nil
}
