// Package cleaning turns raw tabular extracts into loadable rows. Every
// cleaner is a pure function returning the cleaned batch together with the
// metrics describing what it removed or fixed; bad rows are counted, never
// fatal.
package cleaning

import (
	"github.com/samber/lo"

	"github.com/fleximart-data/fleximart/pkg/sources"
)

// Metrics quantifies the cleaning decisions taken for one source table.
// MissingValuesHandled counts both dropped rows and in-place fixes, so it is
// not necessarily the difference between read and surviving records.
type Metrics struct {
	RecordsRead          int
	DuplicatesRemoved    int
	MissingValuesHandled int
	RecordsAfterCleaning int
}

// dedupRecords removes fully duplicate rows, keeping the first occurrence.
func dedupRecords(table *sources.Table, metrics *Metrics) []sources.Record {
	before := len(table.Records)
	records := lo.UniqBy(table.Records, table.RowKey)
	metrics.DuplicatesRemoved += before - len(records)

	return records
}
