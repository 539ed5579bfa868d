// Package cart implements the cart ledger: one line per product, kept in
// first-added order.
package cart

import (
	"errors"

	"github.com/five82/foodikal/internal/foodikal"
)

// ErrNegativeQuantity is returned by SetQuantity for quantities below zero.
var ErrNegativeQuantity = errors.New("quantity must not be negative")

// Catalog resolves product ids for new lines. *state.Store implements it.
type Catalog interface {
	Lookup(id int) (foodikal.MenuItem, bool)
}

// Line is one product's entry in the cart. Name and price are copied from
// the catalog when the line is created.
type Line struct {
	ID       int
	Name     string
	Price    int
	Quantity int
}

// Total returns price × quantity.
func (l Line) Total() int {
	return l.Price * l.Quantity
}

// Ledger owns the cart lines. It is not safe for concurrent use; the shop
// controller serializes access.
type Ledger struct {
	catalog Catalog
	lines   []Line
}

// NewLedger returns an empty ledger resolving products through catalog.
func NewLedger(catalog Catalog) *Ledger {
	return &Ledger{catalog: catalog}
}

// Add increments an existing line or creates a new one from the catalog.
// Unknown products and non-positive quantities are ignored. It reports
// whether the cart changed.
func (l *Ledger) Add(productID, qty int) bool {
	if qty < 1 {
		return false
	}
	if i := l.index(productID); i >= 0 {
		l.lines[i].Quantity += qty
		return true
	}
	if l.catalog == nil {
		return false
	}
	item, ok := l.catalog.Lookup(productID)
	if !ok {
		return false
	}
	l.lines = append(l.lines, Line{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: qty,
	})
	return true
}

// SetQuantity sets the quantity of an existing line; zero removes it.
// Absent ids are a no-op.
func (l *Ledger) SetQuantity(productID, qty int) (bool, error) {
	if qty < 0 {
		return false, ErrNegativeQuantity
	}
	if qty == 0 {
		return l.Remove(productID), nil
	}
	i := l.index(productID)
	if i < 0 || l.lines[i].Quantity == qty {
		return false, nil
	}
	l.lines[i].Quantity = qty
	return true, nil
}

// Remove deletes the line for productID if present.
func (l *Ledger) Remove(productID int) bool {
	i := l.index(productID)
	if i < 0 {
		return false
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	return true
}

// Clear empties the cart.
func (l *Ledger) Clear() bool {
	if len(l.lines) == 0 {
		return false
	}
	l.lines = nil
	return true
}

// Subtotal returns Σ price × quantity.
func (l *Ledger) Subtotal() int {
	sum := 0
	for _, line := range l.lines {
		sum += line.Total()
	}
	return sum
}

// IsEmpty reports whether the cart has no lines.
func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Len returns the number of lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Count returns the total number of units across lines.
func (l *Ledger) Count() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// Quantity returns the quantity held for productID, or zero.
func (l *Ledger) Quantity(productID int) int {
	if i := l.index(productID); i >= 0 {
		return l.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the lines in first-added order.
func (l *Ledger) Lines() []Line {
	if len(l.lines) == 0 {
		return nil
	}
	dup := make([]Line, len(l.lines))
	copy(dup, l.lines)
	return dup
}

// OrderItems returns the wire form of the cart. A positive limit truncates
// the list to its first limit lines.
func (l *Ledger) OrderItems(limit int) []foodikal.OrderItem {
	lines := l.lines
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	items := make([]foodikal.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, foodikal.OrderItem{ItemID: line.ID, Quantity: line.Quantity})
	}
	return items
}

func (l *Ledger) index(productID int) int {
	for i, line := range l.lines {
		if line.ID == productID {
			return i
		}
	}
	return -1
}
