package records

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// decodeExcel reads one worksheet of an .xlsx workbook. An empty sheet name
// selects the first sheet.
func decodeExcel(content []byte, sheet string) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Record{}, nil
	}
	if sheet == "" {
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}
	return fromStringRows(rows, nil), nil
}
