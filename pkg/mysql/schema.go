package mysql

import (
	"context"

	"github.com/pkg/errors"
)

// The target schema. Statements are idempotent so the pipeline can be re-run
// against an already provisioned database; they are executed one by one since
// the driver does not allow multi-statement batches by default.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INT PRIMARY KEY AUTO_INCREMENT,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		phone VARCHAR(20),
		city VARCHAR(50),
		registration_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INT PRIMARY KEY AUTO_INCREMENT,
		product_name VARCHAR(100) NOT NULL,
		category VARCHAR(50) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		stock_quantity INT DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INT PRIMARY KEY AUTO_INCREMENT,
		customer_id INT NOT NULL,
		order_date DATE NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		status VARCHAR(20) DEFAULT 'Pending',
		FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INT PRIMARY KEY AUTO_INCREMENT,
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)`,
}

// EnsureSchema creates the four target tables when they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to ensure target schema")
		}
	}

	return nil
}
