package load

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fleximart-data/fleximart/pkg/cleaning"
	"github.com/fleximart-data/fleximart/pkg/entity"
)

const insertOrderQuery = `INSERT INTO orders (customer_id, order_date, total_amount, status)
VALUES (:customer_id, :order_date, :total_amount, :status)`

const insertOrderItemQuery = `INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
VALUES (:order_id, :product_id, :quantity, :unit_price, :subtotal)`

// Summary counts the outcome of the order assembly stage.
type Summary struct {
	OrdersLoaded    int
	ItemsLoaded     int
	Skipped         int
	MissingCustomer int
	MissingProduct  int
}

// Assembler turns each reconciled sale line into one order with one item.
type Assembler struct {
	conn   *sqlx.DB
	logger *zap.SugaredLogger
}

func NewAssembler(conn *sqlx.DB, logger *zap.SugaredLogger) *Assembler {
	return &Assembler{conn: conn, logger: logger}
}

// Orders resolves every sale line against the two identifier maps and inserts
// the order plus its item for each fully resolved line. Lines missing either
// mapping are counted per side and skipped without any write. The whole batch
// shares one transaction, so an order can never be committed without its item.
func (a *Assembler) Orders(ctx context.Context, lines []entity.SaleLine, customerIDs, productIDs map[string]int64) (Summary, error) {
	var summary Summary

	tx, err := a.conn.BeginTxx(ctx, nil)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to begin orders load transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, line := range lines {
		customerID, customerOK := customerIDs[line.CustomerID]
		productID, productOK := productIDs[line.ProductID]

		if !customerOK {
			summary.MissingCustomer++
		}
		if !productOK {
			summary.MissingProduct++
		}
		if !customerOK || !productOK {
			summary.Skipped++
			a.logger.Debugw(
				"skipping sale line with unresolved mapping",
				"transaction_id", line.TransactionID,
				"customer_resolved", customerOK,
				"product_resolved", productOK,
			)
			continue
		}

		subtotal := decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice)

		status := line.Status
		if status == "" {
			status = cleaning.DefaultStatus
		}

		order := entity.Order{
			CustomerID:  customerID,
			OrderDate:   line.Date,
			TotalAmount: subtotal,
			Status:      status,
		}
		result, err := tx.NamedExecContext(ctx, insertOrderQuery, order)
		if err != nil {
			return Summary{}, errors.Wrapf(err, "failed to insert order for transaction %s", line.TransactionID)
		}

		orderID, err := result.LastInsertId()
		if err != nil {
			return Summary{}, errors.Wrapf(err, "failed to resolve generated order id for transaction %s", line.TransactionID)
		}
		summary.OrdersLoaded++

		item := entity.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		}
		if _, err := tx.NamedExecContext(ctx, insertOrderItemQuery, item); err != nil {
			return Summary{}, errors.Wrapf(err, "failed to insert order item for transaction %s", line.TransactionID)
		}
		summary.ItemsLoaded++
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, errors.Wrap(err, "failed to commit orders load")
	}

	return summary, nil
}
