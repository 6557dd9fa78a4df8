package mysql

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type DB struct {
	conn   *sqlx.DB
	config *Config
}

func NewDB(c *Config) (*DB, error) {
	conn, err := sqlx.Open("mysql", c.ToDBConnectionURI())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mysql connection")
	}

	return &DB{conn: conn, config: c}, nil
}

// Connection exposes the underlying handle for the load stages; they share
// the single pool this client owns.
func (db *DB) Connection() *sqlx.DB {
	return db.conn
}

// Ping runs a trivial query to validate the connection before the pipeline
// starts mutating anything.
func (db *DB) Ping(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "SELECT 1"); err != nil {
		return errors.Wrap(err, "failed to run test query on MySQL connection")
	}

	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}
