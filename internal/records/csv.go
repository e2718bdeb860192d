package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// spreadsheetNumber is how published spreadsheets write numbers.
var spreadsheetNumber = regexp.MustCompile(`^-?\d+(?:\.\d+(?:E[-+]\d+)?)?$`)

// decodeCSV reads a published-sheet CSV export. The first row is the header.
// Quoted cells are kept as strings; only unquoted cells are typed.
func decodeCSV(content []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	starts := lineStarts(content)

	var rows [][]string
	var quoted [][]bool
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}
		q := make([]bool, len(row))
		for i := range row {
			line, col := r.FieldPos(i)
			q[i] = quoteAt(content, starts, line, col)
		}
		rows = append(rows, row)
		quoted = append(quoted, q)
	}

	return fromStringRows(rows, func(row, col int) bool { return quoted[row][col] }), nil
}

// lineStarts returns the byte offset of every line in content.
func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// quoteAt reports whether the field starting at the 1-based line and byte
// column opens with a double quote.
func quoteAt(content []byte, starts []int, line, col int) bool {
	if line < 1 || line > len(starts) || col < 1 {
		return false
	}
	off := starts[line-1] + col - 1
	return off < len(content) && content[off] == '"'
}

// fromStringRows zips the header row with every following row, converting
// cells as a spreadsheet export would have typed them. A cell for which
// quoted reports true is kept verbatim; quoted may be nil.
func fromStringRows(rows [][]string, quoted func(row, col int) bool) []Record {
	if len(rows) == 0 {
		return []Record{}
	}

	header := rows[0]
	recs := make([]Record, 0, len(rows)-1)
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		if isBlankRow(row) {
			continue
		}
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			if quoted != nil && quoted(r, i) {
				cells[i] = cell
				continue
			}
			cells[i] = convertCell(cell)
		}
		recs = append(recs, rowRecord(header, cells))
	}
	return recs
}

// convertCell maps TRUE and FALSE to booleans, the empty string to nil and
// numbers to float64. Everything else stays a string.
func convertCell(cell string) interface{} {
	switch cell {
	case "TRUE":
		return true
	case "FALSE":
		return false
	case "":
		return nil
	}
	if spreadsheetNumber.MatchString(cell) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f
		}
	}
	return cell
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
