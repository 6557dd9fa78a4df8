package load

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fleximart-data/fleximart/pkg/entity"
)

type storedCustomer struct {
	ID    int64  `db:"customer_id"`
	Email string `db:"email"`
}

type storedProduct struct {
	ID       int64  `db:"product_id"`
	Name     string `db:"product_name"`
	Category string `db:"category"`
}

// Mapper rebuilds the external-id to surrogate-id maps after a load by
// re-reading the parent tables. Reading back is the only reliable way to
// learn the generated keys: conflict-tolerant inserts skip rows silently, so
// insert-time key retrieval cannot be trusted.
type Mapper struct {
	conn *sqlx.DB
}

func NewMapper(conn *sqlx.DB) *Mapper {
	return &Mapper{conn: conn}
}

// Customers matches cleaned rows to stored rows by lowercased email. External
// ids whose email is not in storage are simply absent from the map; callers
// must check membership.
func (m *Mapper) Customers(ctx context.Context, cleaned []entity.Customer) (map[string]int64, error) {
	var stored []storedCustomer
	if err := m.conn.SelectContext(ctx, &stored, "SELECT customer_id, email FROM customers"); err != nil {
		return nil, errors.Wrap(err, "failed to read back customers")
	}

	byEmail := make(map[string]int64, len(stored))
	for _, row := range stored {
		byEmail[strings.ToLower(row.Email)] = row.ID
	}

	ids := make(map[string]int64, len(cleaned))
	for _, c := range cleaned {
		if id, ok := byEmail[strings.ToLower(c.Email)]; ok {
			ids[c.ExternalID] = id
		}
	}

	return ids, nil
}

// Products matches cleaned rows to stored rows on (name, category).
func (m *Mapper) Products(ctx context.Context, cleaned []entity.Product) (map[string]int64, error) {
	var stored []storedProduct
	if err := m.conn.SelectContext(ctx, &stored, "SELECT product_id, product_name, category FROM products"); err != nil {
		return nil, errors.Wrap(err, "failed to read back products")
	}

	byKey := make(map[string]int64, len(stored))
	for _, row := range stored {
		key := entity.Product{Name: row.Name, Category: row.Category}.NaturalKey()
		byKey[key] = row.ID
	}

	ids := make(map[string]int64, len(cleaned))
	for _, p := range cleaned {
		if id, ok := byKey[p.NaturalKey()]; ok {
			ids[p.ExternalID] = id
		}
	}

	return ids, nil
}
