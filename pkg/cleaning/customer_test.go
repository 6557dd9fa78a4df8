package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleximart-data/fleximart/pkg/sources"
)

var customerColumns = []string{"customer_id", "first_name", "last_name", "email", "phone", "city", "registration_date"}

func customerRecord(id, email, phone, date string) sources.Record {
	return sources.Record{
		"customer_id":       id,
		"first_name":        " Asha ",
		"last_name":         "Rao",
		"email":             email,
		"phone":             phone,
		"city":              " Mumbai ",
		"registration_date": date,
	}
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	t.Run("duplicate rows collapse and fields normalize", func(t *testing.T) {
		t.Parallel()

		row := customerRecord("C001", " A@X.com ", "9876543210", "2024-01-15")
		table := &sources.Table{
			Columns: customerColumns,
			Records: []sources.Record{row, row},
		}

		customers, metrics := Customers(table)

		require.Len(t, customers, 1)
		assert.Equal(t, "C001", customers[0].ExternalID)
		assert.Equal(t, "a@x.com", customers[0].Email)
		assert.Equal(t, "Asha", customers[0].FirstName)
		assert.Equal(t, "Mumbai", customers[0].City)
		require.True(t, customers[0].Phone.Valid)
		assert.Equal(t, "+91-9876543210", customers[0].Phone.String)
		require.True(t, customers[0].RegistrationDate.Valid)

		assert.Equal(t, Metrics{
			RecordsRead:          2,
			DuplicatesRemoved:    1,
			RecordsAfterCleaning: 1,
		}, metrics)
	})

	t.Run("missing email drops the row", func(t *testing.T) {
		t.Parallel()

		table := &sources.Table{
			Columns: customerColumns,
			Records: []sources.Record{
				customerRecord("C001", "a@x.com", "", ""),
				customerRecord("C002", "nan", "", ""),
				customerRecord("C003", "", "", ""),
			},
		}

		customers, metrics := Customers(table)

		require.Len(t, customers, 1)
		assert.Equal(t, 2, metrics.MissingValuesHandled)
		assert.Equal(t, metrics.RecordsRead-metrics.DuplicatesRemoved-metrics.MissingValuesHandled, metrics.RecordsAfterCleaning)
	})

	t.Run("duplicate emails keep the first occurrence", func(t *testing.T) {
		t.Parallel()

		first := customerRecord("C001", "a@x.com", "", "")
		second := customerRecord("C002", "A@X.COM", "", "")
		table := &sources.Table{
			Columns: customerColumns,
			Records: []sources.Record{first, second},
		}

		customers, metrics := Customers(table)

		require.Len(t, customers, 1)
		assert.Equal(t, "C001", customers[0].ExternalID)
		assert.Equal(t, 1, metrics.DuplicatesRemoved)
	})

	t.Run("invalid phone and date become absent without dropping", func(t *testing.T) {
		t.Parallel()

		table := &sources.Table{
			Columns: customerColumns,
			Records: []sources.Record{
				customerRecord("C001", "a@x.com", "12345", "13/13/2024"),
			},
		}

		customers, metrics := Customers(table)

		require.Len(t, customers, 1)
		assert.False(t, customers[0].Phone.Valid)
		assert.False(t, customers[0].RegistrationDate.Valid)
		assert.Equal(t, 1, metrics.RecordsAfterCleaning)
	})

	t.Run("emails are unique after cleaning", func(t *testing.T) {
		t.Parallel()

		table := &sources.Table{
			Columns: customerColumns,
			Records: []sources.Record{
				customerRecord("C001", "a@x.com", "", ""),
				customerRecord("C002", "b@x.com", "", ""),
				customerRecord("C003", "a@x.com", "", ""),
				customerRecord("C004", "", "", ""),
			},
		}

		customers, _ := Customers(table)

		seen := map[string]bool{}
		for _, c := range customers {
			require.NotEmpty(t, c.Email)
			require.False(t, seen[c.Email], "email %s appears twice", c.Email)
			seen[c.Email] = true
		}
	})

	t.Run("cleaning is idempotent on identical input", func(t *testing.T) {
		t.Parallel()

		records := []sources.Record{
			customerRecord("C001", " A@X.com ", "9876543210", "15/01/2024"),
			customerRecord("C002", "b@x.com", "bad", "2024-02-01"),
			customerRecord("C003", "nan", "", ""),
		}
		table := &sources.Table{Columns: customerColumns, Records: records}

		firstRows, firstMetrics := Customers(table)
		secondRows, secondMetrics := Customers(table)

		assert.Equal(t, firstRows, secondRows)
		assert.Equal(t, firstMetrics, secondMetrics)
	})
}
