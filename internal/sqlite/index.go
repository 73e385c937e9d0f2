package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// ErrIndexClosed is returned by queries on a closed Index.
var ErrIndexClosed = errors.New("index is closed")

// memoryDSN opens a private in-memory database. Each connection to it is a
// separate database, so the pool is pinned to one connection.
const memoryDSN = "file::memory:"

// Index answers aggregate queries over a product snapshot.
type Index struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
}

// KindSummary aggregates the products of one kind.
type KindSummary struct {
	Kind        types.Kind
	Count       int
	TotalAmount int
	// MinSpecial and MaxSpecial span Cake heights or Cup volumes. Valid is
	// false for Belts.
	MinSpecial   int
	MaxSpecial   int
	SpecialValid bool
	// Metal counts metal Belts.
	Metal int
}

// Open loads products into a fresh in-memory database.
func Open(products []types.Product) (*Index, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	if err := insertProducts(db, products); err != nil {
		db.Close()
		return nil, err
	}

	return &Index{db: db}, nil
}

// insertProducts loads the snapshot in one transaction, keeping each
// product's position in the collection.
func insertProducts(db *sql.DB, products []types.Product) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO products
		(position, kind, supply_date, name, amount, metal, measure)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range products {
		var metal, measure sql.NullInt64
		if m, ok := p.Metal(); ok {
			metal = sql.NullInt64{Int64: boolToInt(m), Valid: true}
		}
		if v, ok := p.OrderedSpecial(); ok {
			measure = sql.NullInt64{Int64: int64(v), Valid: true}
		}
		if _, err := stmt.Exec(i, p.Kind().String(), formatDate(p.SupplyDate()), p.Name(), p.Amount(), metal, measure); err != nil {
			return fmt.Errorf("inserting product %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// Close releases the database. Close is idempotent.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.db.Close()
}

// Count returns the number of indexed products.
func (ix *Index) Count() (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return 0, ErrIndexClosed
	}
	var n int
	if err := ix.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Summary returns one row per kind present, ordered Belt, Cake, Cup.
func (ix *Index) Summary() ([]KindSummary, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, ErrIndexClosed
	}

	rows, err := ix.db.Query(`SELECT kind, COUNT(*), SUM(amount), MIN(measure), MAX(measure), COALESCE(SUM(metal), 0)
		FROM products GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var out []KindSummary
	for rows.Next() {
		var (
			kindText   string
			s          KindSummary
			minSpecial sql.NullInt64
			maxSpecial sql.NullInt64
		)
		if err := rows.Scan(&kindText, &s.Count, &s.TotalAmount, &minSpecial, &maxSpecial, &s.Metal); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		kind, err := types.ParseKind(kindText)
		if err != nil {
			return nil, err
		}
		s.Kind = kind
		if minSpecial.Valid && maxSpecial.Valid {
			s.MinSpecial = int(minSpecial.Int64)
			s.MaxSpecial = int(maxSpecial.Int64)
			s.SpecialValid = true
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}

// Span returns the earliest and latest supply dates. ok is false when the
// index is empty.
func (ix *Index) Span() (first, last time.Time, ok bool, err error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return time.Time{}, time.Time{}, false, ErrIndexClosed
	}

	var lo, hi sql.NullString
	if err := ix.db.QueryRow(`SELECT MIN(supply_date), MAX(supply_date) FROM products`).Scan(&lo, &hi); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("query span: %w", err)
	}
	if !lo.Valid || !hi.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	if first, err = time.Parse(dateColumnLayout, lo.String); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse %q: %w", lo.String, err)
	}
	if last, err = time.Parse(dateColumnLayout, hi.String); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse %q: %w", hi.String, err)
	}
	return first, last, true, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateColumnLayout)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
