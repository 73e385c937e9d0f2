// Package manager owns the ordered product collection and the conditional
// bulk removals driven by REM directives.
//
// A Manager is not safe for concurrent use. Callers hold the only reference
// to the live collection; Products hands out copies.
package manager

import (
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Manager holds products in insertion order. Indices are dense and 0-based.
type Manager struct {
	products []types.Product
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{}
}

// Add appends a product.
func (m *Manager) Add(p types.Product) {
	m.products = append(m.products, p)
}

// DeleteByIndex removes the product at index, shifting later products down.
// An out-of-range index is a no-op and returns false.
func (m *Manager) DeleteByIndex(index int) bool {
	if index < 0 || index >= len(m.products) {
		return false
	}
	m.products = append(m.products[:index], m.products[index+1:]...)
	return true
}

// Clear removes every product.
func (m *Manager) Clear() {
	m.products = nil
}

// Replace clears the collection and adds products in order. The slice is
// copied.
func (m *Manager) Replace(products []types.Product) {
	m.products = append([]types.Product(nil), products...)
}

// Products returns a copy of the collection. Later mutations of the Manager
// do not affect the returned slice.
func (m *Manager) Products() []types.Product {
	out := make([]types.Product, len(m.products))
	copy(out, m.products)
	return out
}

// Len returns the number of products.
func (m *Manager) Len() int {
	return len(m.products)
}

// Get returns the product at index.
func (m *Manager) Get(index int) (types.Product, bool) {
	if index < 0 || index >= len(m.products) {
		return types.Product{}, false
	}
	return m.products[index], true
}

// removeWhere makes one left-to-right pass, deleting every product for which
// match is true. After a deletion the same index is checked again because the
// next product has slid into it.
func (m *Manager) removeWhere(match func(types.Product) bool) int {
	removed := 0
	i := 0
	for i < len(m.products) {
		if match(m.products[i]) {
			m.DeleteByIndex(i)
			removed++
			continue
		}
		i++
	}
	return removed
}
