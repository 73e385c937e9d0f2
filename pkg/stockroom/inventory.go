// Package stockroom provides the public API for embedding a product
// inventory in another program. It exposes the inventory operations while
// keeping the codec, parser and interpreter internal.
//
// Example:
//
//	inv, err := stockroom.Open("products.txt")
//	if err != nil {
//	    return err
//	}
//	n, err := inv.Remove("amount < 5")
//	...
//	err = inv.Save("products.txt")
package stockroom

import (
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/command"
	"github.com/mesh-intelligence/stockroom/internal/condition"
	"github.com/mesh-intelligence/stockroom/internal/manager"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Summary reports what a scenario run did.
type Summary = command.Summary

// KindSummary aggregates the products of one kind.
type KindSummary = sqlite.KindSummary

// LineError is a scenario failure tied to its line.
type LineError = command.LineError

// Inventory is an ordered product collection. It is not safe for concurrent
// use.
type Inventory struct {
	m *manager.Manager
}

// New returns an Inventory holding products in order.
func New(products ...types.Product) *Inventory {
	m := manager.New()
	m.Replace(products)
	return &Inventory{m: m}
}

// Open loads a product file into a new Inventory.
func Open(path string) (*Inventory, error) {
	products, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	return New(products...), nil
}

// Products returns a copy of the products in order.
func (inv *Inventory) Products() []types.Product {
	return inv.m.Products()
}

// Len returns the number of products.
func (inv *Inventory) Len() int {
	return inv.m.Len()
}

// Add appends p.
func (inv *Inventory) Add(p types.Product) {
	inv.m.Add(p)
}

// Delete removes the product at index and reports whether it existed.
func (inv *Inventory) Delete(index int) bool {
	return inv.m.DeleteByIndex(index)
}

// Remove deletes every product matching the condition text, for example
// "10 <= amount <= 20", "name != Mug" or "supplyDate >= 2023-06-01".
func (inv *Inventory) Remove(cond string) (int, error) {
	c, err := condition.Parse(cond)
	if err != nil {
		return 0, err
	}
	return command.Apply(inv.m, c)
}

// Run executes scenario directives read from r. A nil logger discards logs.
// With continueOnError, failing lines are skipped and returned together.
func (inv *Inventory) Run(r io.Reader, logger *zap.Logger, continueOnError bool) (Summary, error) {
	var opts []command.Option
	if continueOnError {
		opts = append(opts, command.WithContinueOnError())
	}
	return command.NewProcessor(inv.m, logger, opts...).Run(r)
}

// Save atomically writes the products to path.
func (inv *Inventory) Save(path string) error {
	return codec.Save(path, inv.m.Products())
}

// Stats summarizes the products per kind.
func (inv *Inventory) Stats() ([]KindSummary, error) {
	ix, err := sqlite.Open(inv.m.Products())
	if err != nil {
		return nil, err
	}
	defer ix.Close()
	return ix.Summary()
}
