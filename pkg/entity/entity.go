package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a cleaned customer row ready for loading. ExternalID carries the
// source identifier (e.g. "C001") used for surrogate-key reconciliation and is
// never written to storage.
type Customer struct {
	ExternalID       string         `db:"-"`
	FirstName        string         `db:"first_name"`
	LastName         string         `db:"last_name"`
	Email            string         `db:"email"`
	Phone            sql.NullString `db:"phone"`
	City             string         `db:"city"`
	RegistrationDate sql.NullTime   `db:"registration_date"`
}

type Product struct {
	ExternalID    string          `db:"-"`
	Name          string          `db:"product_name"`
	Category      string          `db:"category"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
}

// NaturalKey identifies a product within a batch and in storage, where the
// table itself carries no uniqueness constraint.
func (p Product) NaturalKey() string {
	return p.Name + "\x1f" + p.Category
}

// SaleLine is a cleaned sales transaction. Customer and product identifiers
// are still the external ones; they are resolved to surrogate keys right
// before the order load.
type SaleLine struct {
	TransactionID string
	CustomerID    string
	ProductID     string
	Date          time.Time
	Quantity      int
	UnitPrice     decimal.Decimal
	Status        string
}

type Order struct {
	CustomerID  int64           `db:"customer_id"`
	OrderDate   time.Time       `db:"order_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      string          `db:"status"`
}

type OrderItem struct {
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}
