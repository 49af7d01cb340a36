package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// LoadCSV parses CSV with a header row into an array of objects. Object keys
// follow the column order; short rows get empty strings for the missing
// columns.
func LoadCSV(data []byte) (*document.Value, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	rows := document.NewArray()
	if len(records) == 0 {
		return rows, nil
	}

	headers := records[0]
	for _, record := range records[1:] {
		row := document.NewObject()
		for j, header := range headers {
			value := ""
			if j < len(record) {
				value = record[j]
			}
			row.Set(header, document.NewString(value))
		}
		rows.Append(row)
	}
	return rows, nil
}

// isCSVFile checks if a file path appears to be a CSV file based on extension.
func isCSVFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
