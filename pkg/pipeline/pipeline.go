// Package pipeline runs the full extract-clean-load sequence and collects the
// quality metrics of every stage into a single report.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/fleximart-data/fleximart/pkg/cleaning"
	"github.com/fleximart-data/fleximart/pkg/config"
	"github.com/fleximart-data/fleximart/pkg/load"
	"github.com/fleximart-data/fleximart/pkg/report"
	"github.com/fleximart-data/fleximart/pkg/sources"
)

// schemaManager is the slice of the database client the runner needs besides
// the raw connection.
type schemaManager interface {
	EnsureSchema(ctx context.Context) error
	Connection() *sqlx.DB
}

type Runner struct {
	fs     afero.Fs
	config *config.Config
	db     schemaManager
	logger *zap.SugaredLogger
}

func NewRunner(fs afero.Fs, cfg *config.Config, db schemaManager, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		fs:     fs,
		config: cfg,
		db:     db,
		logger: logger,
	}
}

// Run executes the pipeline end to end: ensure the target schema, clean the
// three extracts, load customers and products, reconcile their generated ids
// and assemble the orders. Any stage failure aborts the run; the report is
// only meaningful for a run that completed.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	if err := r.db.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	customersTable, err := sources.ReadCSV(r.fs, r.config.Inputs.Customers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read customers extract")
	}
	productsTable, err := sources.ReadCSV(r.fs, r.config.Inputs.Products)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read products extract")
	}
	salesTable, err := sources.ReadCSV(r.fs, r.config.Inputs.Sales)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sales extract")
	}

	customers, customerMetrics := cleaning.Customers(customersTable)
	products, productMetrics := cleaning.Products(productsTable)
	sales, salesMetrics := cleaning.Sales(salesTable)
	r.logger.Infof(
		"cleaned extracts: %d customers, %d products, %d sale lines",
		len(customers), len(products), len(sales),
	)

	conn := r.db.Connection()
	loader := load.NewLoader(conn, r.logger)

	customersLoaded, err := loader.Customers(ctx, customers)
	if err != nil {
		return nil, err
	}
	productsLoaded, err := loader.Products(ctx, products)
	if err != nil {
		return nil, err
	}

	mapper := load.NewMapper(conn)
	customerIDs, err := mapper.Customers(ctx, customers)
	if err != nil {
		return nil, err
	}
	productIDs, err := mapper.Products(ctx, products)
	if err != nil {
		return nil, err
	}
	r.logger.Infof("reconciled %d customer and %d product ids", len(customerIDs), len(productIDs))

	summary, err := load.NewAssembler(conn, r.logger).Orders(ctx, sales, customerIDs, productIDs)
	if err != nil {
		return nil, err
	}
	if summary.Skipped > 0 {
		r.logger.Warnf("skipped %d sale lines with unresolved id mappings", summary.Skipped)
	}

	rep := &report.Report{}
	addCleaningSection(rep, filepath.Base(r.config.Inputs.Customers), customerMetrics)
	addCleaningSection(rep, filepath.Base(r.config.Inputs.Products), productMetrics)
	addCleaningSection(rep, filepath.Base(r.config.Inputs.Sales), salesMetrics)
	rep.AddSection(
		"LOAD_SUMMARY",
		report.Metric{Key: "customers_loaded_successfully", Value: customersLoaded},
		report.Metric{Key: "products_loaded_successfully", Value: productsLoaded},
		report.Metric{Key: "orders_loaded_successfully", Value: summary.OrdersLoaded},
		report.Metric{Key: "order_items_loaded_successfully", Value: summary.ItemsLoaded},
		report.Metric{Key: "sales_rows_skipped_due_to_missing_id_mapping", Value: summary.Skipped},
		report.Metric{Key: "sales_rows_skipped_missing_customer_mapping", Value: summary.MissingCustomer},
		report.Metric{Key: "sales_rows_skipped_missing_product_mapping", Value: summary.MissingProduct},
	)

	return rep, nil
}

func addCleaningSection(rep *report.Report, name string, m cleaning.Metrics) {
	rep.AddSection(
		name,
		report.Metric{Key: "records_read", Value: m.RecordsRead},
		report.Metric{Key: "duplicates_removed", Value: m.DuplicatesRemoved},
		report.Metric{Key: "missing_values_handled", Value: m.MissingValuesHandled},
		report.Metric{Key: "records_after_cleaning", Value: m.RecordsAfterCleaning},
	)
}
