package domain

import "time"

// StockEntry is one row of the warehouse ledger. Quantity is the total on
// hand; Reserved is the portion held by pending orders. Both are maintained
// by the store under the invariant 0 <= Reserved <= Quantity.
type StockEntry struct {
	ID        string
	ItemCode  string
	Quantity  int
	Reserved  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available is the quantity a new order may still claim.
func (s StockEntry) Available() int {
	return s.Quantity - s.Reserved
}
