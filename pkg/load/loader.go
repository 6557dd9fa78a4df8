// Package load writes cleaned batches into the target schema and reconciles
// externally issued identifiers with the surrogate keys the database
// generates. Each stage runs in its own transaction; a storage error aborts
// the run rather than masking a partial load.
package load

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleximart-data/fleximart/pkg/entity"
)

// INSERT IGNORE keeps the customer load re-runnable: an email left over from
// a prior partial run hits the unique key and is skipped silently.
const insertCustomersQuery = `INSERT IGNORE INTO customers (first_name, last_name, email, phone, city, registration_date)
VALUES (:first_name, :last_name, :email, :phone, :city, :registration_date)`

const insertProductsQuery = `INSERT INTO products (product_name, category, price, stock_quantity)
VALUES (:product_name, :category, :price, :stock_quantity)`

type Loader struct {
	conn   *sqlx.DB
	logger *zap.SugaredLogger
}

func NewLoader(conn *sqlx.DB, logger *zap.SugaredLogger) *Loader {
	return &Loader{conn: conn, logger: logger}
}

// Customers inserts the cleaned customer batch in a single transaction.
// Returns the number of insertion attempts, not net new rows; conflict-skipped
// inserts still count as attempts.
func (l *Loader) Customers(ctx context.Context, customers []entity.Customer) (int, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	if err := l.batchInsert(ctx, insertCustomersQuery, customers); err != nil {
		return 0, errors.Wrap(err, "failed to load customers")
	}

	l.logger.Debugf("attempted %d customer inserts", len(customers))

	return len(customers), nil
}

// Products inserts the cleaned product batch unconditionally; the products
// table carries no natural uniqueness constraint.
func (l *Loader) Products(ctx context.Context, products []entity.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	if err := l.batchInsert(ctx, insertProductsQuery, products); err != nil {
		return 0, errors.Wrap(err, "failed to load products")
	}

	l.logger.Debugf("attempted %d product inserts", len(products))

	return len(products), nil
}

func (l *Loader) batchInsert(ctx context.Context, query string, rows interface{}) error {
	tx, err := l.conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
