package port

import (
	"context"

	"github.com/minhvd/warehouse/internal/core/domain"
)

// OrderRepository stores orders and owns the status state machine's
// persistence. Approve and Reject span the orders and stock tables in one
// transaction so an order's visible status and the ledger's visible quantity
// never diverge.
type OrderRepository interface {
	// Create persists a new pending order. ID, Status and CreatedAt are
	// assigned by the store.
	Create(ctx context.Context, order *domain.Order) error

	// Get returns the order or domain.ErrOrderNotFound.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Approve atomically consumes the order's hold (decrementing stock by
	// the order quantity) and marks it approved. Fails with
	// domain.ErrOrderNotFound, domain.ErrInvalidTransition if the order is
	// not pending, or domain.ErrInsufficientStock if stock no longer
	// covers the order; on failure the order stays pending and stock is
	// untouched.
	Approve(ctx context.Context, orderID string) (*domain.Order, error)

	// Reject atomically releases the order's hold and marks it rejected.
	// Same not-found/transition failures as Approve; never changes
	// quantity.
	Reject(ctx context.Context, orderID string) (*domain.Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}
