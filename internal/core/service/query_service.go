package service

import (
	"context"
	"time"

	"github.com/minhvd/warehouse/internal/core/domain"
	"github.com/minhvd/warehouse/internal/port"
)

// QueryService is the read-only projection layer for presentation. It holds
// no invariants of its own and never mutates the stores.
type QueryService struct {
	ledger port.LedgerRepository
	orders port.OrderRepository
}

func NewQueryService(ledger port.LedgerRepository, orders port.OrderRepository) *QueryService {
	return &QueryService{ledger: ledger, orders: orders}
}

func (s *QueryService) ListStock(ctx context.Context) ([]domain.StockEntry, error) {
	return s.ledger.List(ctx)
}

func (s *QueryService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// PendingOrders is the approval queue view.
func (s *QueryService) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx, domain.OrderFilter{
		Statuses: []domain.OrderStatus{domain.OrderStatusPending},
	})
}

// OrderHistory returns resolved orders in the date range, optionally limited
// to one terminal status.
func (s *QueryService) OrderHistory(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	statuses := []domain.OrderStatus{domain.OrderStatusApproved, domain.OrderStatusRejected}
	if status != "" {
		statuses = []domain.OrderStatus{status}
	}
	return s.orders.List(ctx, domain.OrderFilter{
		Statuses: statuses,
		From:     from,
		To:       to,
	})
}

type DashboardSummary struct {
	ItemCount     int `json:"item_count"`
	UnitsOnHand   int `json:"units_on_hand"`
	UnitsReserved int `json:"units_reserved"`
	PendingOrders int `json:"pending_orders"`
}

// Dashboard aggregates the numbers the landing screen shows.
func (s *QueryService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.PendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		ItemCount:     len(entries),
		PendingOrders: len(pending),
	}
	for _, entry := range entries {
		summary.UnitsOnHand += entry.Quantity
		summary.UnitsReserved += entry.Reserved
	}

	return summary, nil
}
