// Package sources reads raw tabular extracts into memory. It treats every
// field as an untyped string; all typing and cleanup happens downstream.
package sources

import (
	"encoding/csv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Record is one raw row keyed by column name.
type Record map[string]string

// Table is an in-memory tabular extract. Columns preserves the source column
// order, which Records cannot.
type Table struct {
	Columns []string
	Records []Record
}

// ReadCSV loads a CSV extract. A missing or unreadable file is fatal to the
// run. Fully empty rows are skipped; short rows keep whatever columns they
// have.
func ReadCSV(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open source file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read csv from %s", path)
	}

	if len(rows) == 0 {
		return nil, errors.Errorf("source file %s has no header row", path)
	}

	columns := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		columns[i] = strings.TrimSpace(col)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		record := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	return &Table{Columns: columns, Records: records}, nil
}

// RowKey serializes a record's values in column order, giving full-row
// deduplication a stable identity.
func (t *Table) RowKey(r Record) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		parts[i] = r[col]
	}

	return strings.Join(parts, "\x1f")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
