package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/minhvd/warehouse/internal/core/domain"
	"github.com/minhvd/warehouse/internal/port"
)

// SubmitOrderInput carries the sender-provided fields of a new order.
// RequestID is an optional client token for duplicate suppression.
type SubmitOrderInput struct {
	RequestID string
	ItemCode  string
	Quantity  int
	Recipient string
	Address   string
	Phone     string
}

// FulfillmentService coordinates the order lifecycle against the ledger.
// Submitting an order reserves stock, approval converts the hold into a
// decrement, rejection releases it. All serialization happens in the stores;
// the service keeps no state of its own.
type FulfillmentService struct {
	ledger port.LedgerRepository
	orders port.OrderRepository
	cache  port.CacheRepository
	logger *zap.Logger
}

// NewFulfillmentService wires the coordinator. cache may be nil, which
// disables submit deduplication.
func NewFulfillmentService(ledger port.LedgerRepository, orders port.OrderRepository, cache port.CacheRepository, logger *zap.Logger) *FulfillmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FulfillmentService{
		ledger: ledger,
		orders: orders,
		cache:  cache,
		logger: logger,
	}
}

// SubmitOrder validates the request, places a hold on the ledger and persists
// a pending order. The hold closes the double-sell window: a second order for
// stock already promised to a pending one fails here, not at approval.
func (s *FulfillmentService) SubmitOrder(ctx context.Context, actor domain.Actor, in SubmitOrderInput) (*domain.Order, error) {
	if !actor.Can(domain.OpSubmitOrder) {
		return nil, domain.ErrUnauthorized
	}

	order := domain.Order{
		ItemCode:    in.ItemCode,
		Quantity:    in.Quantity,
		Recipient:   in.Recipient,
		Address:     in.Address,
		Phone:       in.Phone,
		SenderEmail: actor.Email,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if s.cache != nil && in.RequestID != "" {
		key := fmt.Sprintf("%s:%s", actor.Email, in.RequestID)
		ok, err := s.cache.SetIdempotency(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	if err := s.ledger.Reserve(ctx, order.ItemCode, order.Quantity); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		// Compensate: the hold must not outlive a failed create.
		if relErr := s.ledger.Release(ctx, order.ItemCode, order.Quantity); relErr != nil {
			s.logger.Error("stock hold leaked after failed order create, manual reconciliation required",
				zap.String("item_code", order.ItemCode),
				zap.Int("quantity", order.Quantity),
				zap.Error(relErr),
			)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.ID),
		zap.String("item_code", order.ItemCode),
		zap.Int("quantity", order.Quantity),
		zap.String("sender", order.SenderEmail),
	)

	return &order, nil
}

// ResolveOrder moves a pending order to a terminal status. Only admins may
// resolve; resolving an already-resolved order fails rather than repeating.
func (s *FulfillmentService) ResolveOrder(ctx context.Context, actor domain.Actor, orderID string, decision domain.OrderStatus) (*domain.Order, error) {
	if !actor.Can(domain.OpResolveOrder) {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidDecision(decision) {
		return nil, fmt.Errorf("%w: decision %q", domain.ErrInvalidTransition, decision)
	}

	var order *domain.Order
	var err error
	if decision == domain.OrderStatusApproved {
		order, err = s.orders.Approve(ctx, orderID)
	} else {
		order, err = s.orders.Reject(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("order resolved",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.String("resolved_by", actor.Email),
	)

	return order, nil
}

// Restock adds stock for an item, creating its ledger entry on first sight.
// Not order-mediated.
func (s *FulfillmentService) Restock(ctx context.Context, actor domain.Actor, itemCode string, amount int) (*domain.StockEntry, error) {
	if !actor.Can(domain.OpRestock) {
		return nil, domain.ErrUnauthorized
	}

	entry, err := s.ledger.Increase(ctx, itemCode, amount)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock increased",
		zap.String("item_code", itemCode),
		zap.Int("amount", amount),
		zap.Int("quantity", entry.Quantity),
	)

	return entry, nil
}

// RemoveStock writes off stock outside the order flow, for example damaged
// units. It fails rather than eat into quantities held by pending orders.
func (s *FulfillmentService) RemoveStock(ctx context.Context, actor domain.Actor, itemCode string, amount int) (*domain.StockEntry, error) {
	if !actor.Can(domain.OpRemoveStock) {
		return nil, domain.ErrUnauthorized
	}

	if err := s.ledger.Decrease(ctx, itemCode, amount); err != nil {
		return nil, err
	}

	entry, err := s.ledger.Get(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock removed",
		zap.String("item_code", itemCode),
		zap.Int("amount", amount),
		zap.Int("quantity", entry.Quantity),
	)

	return entry, nil
}
