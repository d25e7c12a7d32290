package service

import (
	"context"
	"testing"
	"time"

	"github.com/minhvd/warehouse/internal/core/domain"
)

func seedOrder(b *memoryBackend, id string, status domain.OrderStatus, createdAt time.Time) {
	b.orders[id] = &domain.Order{
		ID:          id,
		ItemCode:    "A",
		Quantity:    1,
		Recipient:   "r",
		Address:     "a",
		Phone:       "p",
		SenderEmail: "sales@example.com",
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestPendingOrders(t *testing.T) {
	backend := newMemoryBackend()
	queries := NewQueryService(&memoryLedger{b: backend}, &memoryOrders{b: backend})

	now := time.Now()
	seedOrder(backend, "o1", domain.OrderStatusPending, now)
	seedOrder(backend, "o2", domain.OrderStatusApproved, now)
	seedOrder(backend, "o3", domain.OrderStatusRejected, now)
	seedOrder(backend, "o4", domain.OrderStatusPending, now)

	pending, err := queries.PendingOrders(context.Background())
	if err != nil {
		t.Fatalf("PendingOrders failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(pending))
	}
	for _, order := range pending {
		if order.Status != domain.OrderStatusPending {
			t.Errorf("unexpected status %s", order.Status)
		}
	}
}

func TestOrderHistory_DateRangeAndStatus(t *testing.T) {
	backend := newMemoryBackend()
	queries := NewQueryService(&memoryLedger{b: backend}, &memoryOrders{b: backend})

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}
	seedOrder(backend, "old", domain.OrderStatusApproved, day(1))
	seedOrder(backend, "in-approved", domain.OrderStatusApproved, day(10))
	seedOrder(backend, "in-rejected", domain.OrderStatusRejected, day(11))
	seedOrder(backend, "in-pending", domain.OrderStatusPending, day(12))
	seedOrder(backend, "late", domain.OrderStatusRejected, day(20))

	ctx := context.Background()
	from, to := day(9), day(15)

	history, err := queries.OrderHistory(ctx, from, to, "")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 resolved orders in range, got %d", len(history))
	}
	// Newest first.
	if history[0].ID != "in-rejected" || history[1].ID != "in-approved" {
		t.Errorf("unexpected ordering: %s, %s", history[0].ID, history[1].ID)
	}

	approvedOnly, err := queries.OrderHistory(ctx, from, to, domain.OrderStatusApproved)
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(approvedOnly) != 1 || approvedOnly[0].ID != "in-approved" {
		t.Errorf("expected only the approved order, got %v", approvedOnly)
	}

	// Open-ended range returns all resolved orders.
	all, err := queries.OrderHistory(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 resolved orders, got %d", len(all))
	}
}

func TestListStockAndDashboard(t *testing.T) {
	backend := newMemoryBackend()
	ledger := &memoryLedger{b: backend}
	queries := NewQueryService(ledger, &memoryOrders{b: backend})
	ctx := context.Background()

	ledger.Increase(ctx, "B", 4)
	ledger.Increase(ctx, "A", 10)
	ledger.Reserve(ctx, "A", 3)
	seedOrder(backend, "o1", domain.OrderStatusPending, time.Now())

	entries, err := queries.ListStock(ctx)
	if err != nil {
		t.Fatalf("ListStock failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ItemCode != "A" || entries[1].ItemCode != "B" {
		t.Errorf("expected item-code order, got %s, %s", entries[0].ItemCode, entries[1].ItemCode)
	}
	if entries[0].Available() != 7 {
		t.Errorf("expected 7 available for A, got %d", entries[0].Available())
	}

	summary, err := queries.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if summary.ItemCount != 2 || summary.UnitsOnHand != 14 || summary.UnitsReserved != 3 || summary.PendingOrders != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
