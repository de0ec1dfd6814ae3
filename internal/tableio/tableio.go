// Package tableio loads uploaded spreadsheets into a column-addressable
// table. Only the first sheet of an xlsx workbook is read; the first
// non-empty row is the header.
package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("file must be .xlsx or .csv")

type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// Load dispatches on the file extension of name.
func Load(name string, r io.Reader) (*Table, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(r)
	case strings.HasSuffix(lower, ".csv"):
		return LoadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func LoadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return newTable(nil, nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(records), nil
}

func fromRows(rows [][]string) *Table {
	headerIdx := -1
	for i, row := range rows {
		if len(trimRow(row)) > 0 {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return newTable(nil, nil)
	}

	columns := trimRow(rows[headerIdx])
	body := make([][]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		cells := make([]string, len(columns))
		empty := true
		for i := range columns {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
			if cells[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		body = append(body, cells)
	}
	return newTable(columns, body)
}

func newTable(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, exists := index[c]; !exists {
			index[c] = i
		}
	}
	return &Table{Columns: columns, Rows: rows, index: index}
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Cell returns the trimmed value at (row, column), or "" when the column
// is absent.
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func trimRow(row []string) []string {
	last := -1
	for i, c := range row {
		if strings.TrimSpace(c) != "" {
			last = i
		}
	}
	out := make([]string, last+1)
	for i := 0; i <= last; i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}
