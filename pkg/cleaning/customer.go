package cleaning

import (
	"database/sql"
	"strings"

	"github.com/samber/lo"

	"github.com/fleximart-data/fleximart/pkg/entity"
	"github.com/fleximart-data/fleximart/pkg/normalize"
	"github.com/fleximart-data/fleximart/pkg/sources"
)

// Customers cleans the raw customer extract. Email is the join key used later
// to reconcile surrogate ids, so rows without one are dropped; invalid phones
// and dates pass through as absent values instead.
func Customers(table *sources.Table) ([]entity.Customer, Metrics) {
	metrics := Metrics{RecordsRead: len(table.Records)}

	records := dedupRecords(table, &metrics)

	customers := make([]entity.Customer, 0, len(records))
	for _, r := range records {
		email := strings.ToLower(strings.TrimSpace(r["email"]))
		if normalize.IsMissing(email) {
			metrics.MissingValuesHandled++
			continue
		}

		customer := entity.Customer{
			ExternalID: strings.TrimSpace(r["customer_id"]),
			FirstName:  strings.TrimSpace(r["first_name"]),
			LastName:   strings.TrimSpace(r["last_name"]),
			Email:      email,
			City:       strings.TrimSpace(r["city"]),
		}

		if phone, ok := normalize.Phone(r["phone"]); ok {
			customer.Phone = sql.NullString{String: phone, Valid: true}
		}

		if date, ok := normalize.ParseDate(r["registration_date"]); ok {
			customer.RegistrationDate = sql.NullTime{Time: date, Valid: true}
		}

		customers = append(customers, customer)
	}

	// The target schema enforces email uniqueness, keep the first occurrence.
	before := len(customers)
	customers = lo.UniqBy(customers, func(c entity.Customer) string { return c.Email })
	metrics.DuplicatesRemoved += before - len(customers)

	metrics.RecordsAfterCleaning = len(customers)

	return customers, metrics
}
