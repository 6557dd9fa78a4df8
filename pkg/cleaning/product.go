package cleaning

import (
	"strings"

	"github.com/samber/lo"

	"github.com/fleximart-data/fleximart/pkg/entity"
	"github.com/fleximart-data/fleximart/pkg/normalize"
	"github.com/fleximart-data/fleximart/pkg/sources"
)

// Products cleans the raw product extract. A missing or invalid price is
// schema-fatal for the row; a bad stock quantity only falls back to the
// schema default of zero.
func Products(table *sources.Table) ([]entity.Product, Metrics) {
	metrics := Metrics{RecordsRead: len(table.Records)}

	products := make([]entity.Product, 0, len(table.Records))
	for _, r := range table.Records {
		price, ok := normalize.ParseDecimal(r["price"])
		if !ok {
			metrics.MissingValuesHandled++
			continue
		}

		product := entity.Product{
			ExternalID: strings.TrimSpace(r["product_id"]),
			Name:       strings.TrimSpace(r["product_name"]),
			Category:   normalize.Category(r["category"]),
			Price:      price,
		}

		if qty, ok := normalize.ParseInt(r["stock_quantity"]); ok && qty >= 0 {
			product.StockQuantity = qty
		} else {
			metrics.MissingValuesHandled++
		}

		products = append(products, product)
	}

	before := len(products)
	products = lo.UniqBy(products, entity.Product.NaturalKey)
	metrics.DuplicatesRemoved += before - len(products)

	metrics.RecordsAfterCleaning = len(products)

	return products, metrics
}
