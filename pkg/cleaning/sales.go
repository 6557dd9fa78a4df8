package cleaning

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fleximart-data/fleximart/pkg/entity"
	"github.com/fleximart-data/fleximart/pkg/normalize"
	"github.com/fleximart-data/fleximart/pkg/sources"
)

// DefaultStatus is applied to sale lines whose status is blank or a missing
// marker, matching the schema default on the orders table.
const DefaultStatus = "Pending"

// Sales cleans the raw sales extract into sale lines ready for order
// assembly. Rows that cannot become a valid order (missing join keys,
// unparseable date, non-positive quantity) are dropped and counted; a bad
// unit price only falls back to zero.
func Sales(table *sources.Table) ([]entity.SaleLine, Metrics) {
	metrics := Metrics{RecordsRead: len(table.Records)}

	records := dedupRecords(table, &metrics)

	before := len(records)
	records = lo.UniqBy(records, func(r sources.Record) string { return strings.TrimSpace(r["transaction_id"]) })
	metrics.DuplicatesRemoved += before - len(records)

	lines := make([]entity.SaleLine, 0, len(records))
	for _, r := range records {
		customerID := strings.TrimSpace(r["customer_id"])
		productID := strings.TrimSpace(r["product_id"])
		if normalize.IsMissing(customerID) || normalize.IsMissing(productID) {
			metrics.MissingValuesHandled++
			continue
		}

		date, ok := normalize.ParseDate(r["transaction_date"])
		if !ok {
			metrics.MissingValuesHandled++
			continue
		}

		qty, ok := normalize.ParseInt(r["quantity"])
		if !ok || qty <= 0 {
			metrics.MissingValuesHandled++
			continue
		}

		unitPrice, ok := normalize.ParseDecimal(r["unit_price"])
		if !ok {
			unitPrice = decimal.Zero
		}

		status := strings.TrimSpace(r["status"])
		if normalize.IsMissing(status) {
			status = DefaultStatus
		}

		lines = append(lines, entity.SaleLine{
			TransactionID: strings.TrimSpace(r["transaction_id"]),
			CustomerID:    customerID,
			ProductID:     productID,
			Date:          date,
			Quantity:      qty,
			UnitPrice:     unitPrice,
			Status:        status,
		})
	}

	metrics.RecordsAfterCleaning = len(lines)

	return lines, metrics
}
