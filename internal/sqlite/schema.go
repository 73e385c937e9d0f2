// Package sqlite builds an in-memory SQLite index over a product snapshot.
// The product file stays the source of truth; the index is rebuilt on every
// Open and discarded on Close.
package sqlite

// Schema DDL for the products index.
const (
	createProducts = `CREATE TABLE products (
    position INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    supply_date TEXT NOT NULL,
    name TEXT NOT NULL,
    amount INTEGER NOT NULL,
    metal INTEGER,
    measure INTEGER
);`

	createProductsKindIndex = `CREATE INDEX idx_products_kind ON products(kind);`
)

// schemaStatements lists the DDL executed on Open, in order.
var schemaStatements = []string{
	createProducts,
	createProductsKindIndex,
}

// dateColumnLayout stores supply dates in UTC with a fixed width so that
// text order equals time order.
const dateColumnLayout = "2006-01-02 15:04:05.000000"
