package load

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleximart-data/fleximart/pkg/entity"
)

func testSaleLine() entity.SaleLine {
	return entity.SaleLine{
		TransactionID: "T001",
		CustomerID:    "C001",
		ProductID:     "P001",
		Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Quantity:      2,
		UnitPrice:     decimal.RequireFromString("29.99"),
		Status:        "Completed",
	}
}

func TestAssembler_Orders(t *testing.T) {
	t.Parallel()

	t.Run("resolved line inserts order and item with exact subtotal", func(t *testing.T) {
		t.Parallel()

		conn, mock := newMockConn(t)
		line := testSaleLine()
		subtotal := decimal.RequireFromString("59.98")

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(int64(1), line.Date, subtotal, "Completed").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(int64(7), int64(10), 2, line.UnitPrice, subtotal).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assembler := NewAssembler(conn, zap.NewNop().Sugar())
		summary, err := assembler.Orders(
			context.Background(),
			[]entity.SaleLine{line},
			map[string]int64{"C001": 1},
			map[string]int64{"P001": 10},
		)

		require.NoError(t, err)
		assert.Equal(t, Summary{OrdersLoaded: 1, ItemsLoaded: 1}, summary)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unresolved mappings are counted per side and skipped", func(t *testing.T) {
		t.Parallel()

		conn, mock := newMockConn(t)

		noCustomer := testSaleLine()
		noCustomer.TransactionID = "T002"
		noCustomer.CustomerID = "C999"

		noProduct := testSaleLine()
		noProduct.TransactionID = "T003"
		noProduct.ProductID = "P999"

		neither := testSaleLine()
		neither.TransactionID = "T004"
		neither.CustomerID = "C999"
		neither.ProductID = "P999"

		mock.ExpectBegin()
		mock.ExpectCommit()

		assembler := NewAssembler(conn, zap.NewNop().Sugar())
		summary, err := assembler.Orders(
			context.Background(),
			[]entity.SaleLine{noCustomer, noProduct, neither},
			map[string]int64{"C001": 1},
			map[string]int64{"P001": 10},
		)

		require.NoError(t, err)
		assert.Equal(t, Summary{
			Skipped:         3,
			MissingCustomer: 2,
			MissingProduct:  2,
		}, summary)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("item insert failure aborts without committing the order", func(t *testing.T) {
		t.Parallel()

		conn, mock := newMockConn(t)
		line := testSaleLine()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		assembler := NewAssembler(conn, zap.NewNop().Sugar())
		_, err := assembler.Orders(
			context.Background(),
			[]entity.SaleLine{line},
			map[string]int64{"C001": 1},
			map[string]int64{"P001": 10},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert order item for transaction T001")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank status falls back to pending", func(t *testing.T) {
		t.Parallel()

		conn, mock := newMockConn(t)
		line := testSaleLine()
		line.Status = ""
		subtotal := decimal.RequireFromString("59.98")

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(int64(1), line.Date, subtotal, "Pending").
			WillReturnResult(sqlmock.NewResult(8, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assembler := NewAssembler(conn, zap.NewNop().Sugar())
		summary, err := assembler.Orders(
			context.Background(),
			[]entity.SaleLine{line},
			map[string]int64{"C001": 1},
			map[string]int64{"P001": 10},
		)

		require.NoError(t, err)
		assert.Equal(t, Summary{OrdersLoaded: 1, ItemsLoaded: 1}, summary)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
