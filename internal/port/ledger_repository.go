package port

import (
	"context"

	"github.com/minhvd/warehouse/internal/core/domain"
)

// LedgerRepository is the durable per-item stock store. Implementations must
// make every mutation a single atomic step with respect to concurrent calls
// on the same item code; the store, not the caller, is the serialization
// point. Quantity never goes negative, and reserved never exceeds quantity.
type LedgerRepository interface {
	// Increase adds amount to the item's quantity, creating the entry on
	// first sight. amount must be positive.
	Increase(ctx context.Context, itemCode string, amount int) (*domain.StockEntry, error)

	// Decrease subtracts amount from the item's quantity. Fails with
	// domain.ErrInsufficientStock if amount exceeds available stock
	// (quantity minus holds) or the item is unknown, leaving the entry
	// unchanged.
	Decrease(ctx context.Context, itemCode string, amount int) error

	// Reserve places a hold of amount against available stock. Fails with
	// domain.ErrInsufficientStock without side effect if available stock
	// is short.
	Reserve(ctx context.Context, itemCode string, amount int) error

	// Release returns a hold to available stock. Releasing more than is
	// held clamps at zero.
	Release(ctx context.Context, itemCode string, amount int) error

	// Get returns the entry or domain.ErrItemNotFound. Entries are never
	// deleted, so a zero-quantity entry is found, not missing.
	Get(ctx context.Context, itemCode string) (*domain.StockEntry, error)

	// List returns all entries ordered by item code.
	List(ctx context.Context) ([]domain.StockEntry, error)
}
