package pipeline

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"agrisight/internal"
)

// RecordsFromXLSX reads the first sheet of a workbook into raw records. The
// first non-empty row is the header; later rows map header -> cell string.
// Short rows leave trailing columns absent rather than empty.
func RecordsFromXLSX(r io.Reader) ([]internal.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	return recordsFromGrid(rows), nil
}

// RecordsFromCSV reads a CSV stream the same way: first row is the header.
func RecordsFromCSV(r io.Reader) ([]internal.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return recordsFromGrid(rows), nil
}

func recordsFromGrid(rows [][]string) []internal.Record {
	var header []string
	out := []internal.Record{}
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, cell := range row {
				header[i] = strings.TrimSpace(cell)
			}
			continue
		}

		rec := make(internal.Record, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = row[i]
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
