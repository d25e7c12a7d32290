package domain

import (
	"errors"
	"testing"
	"time"
)

func validOrder() Order {
	return Order{
		ItemCode:    "A-100",
		Quantity:    2,
		Recipient:   "Nguyen Van A",
		Address:     "12 Ly Thuong Kiet",
		Phone:       "0901234567",
		SenderEmail: "sales@example.com",
	}
}

func TestOrderValidate(t *testing.T) {
	if err := validOrder().Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	o := validOrder()
	o.ItemCode = "  "
	if err := o.Validate(); !errors.Is(err, ErrInvalidItemCode) {
		t.Errorf("expected ErrInvalidItemCode, got: %v", err)
	}

	o = validOrder()
	o.Quantity = 0
	if err := o.Validate(); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got: %v", err)
	}
	o.Quantity = -3
	if err := o.Validate(); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got: %v", err)
	}

	o = validOrder()
	o.Phone = ""
	if err := o.Validate(); !errors.Is(err, ErrMissingRecipient) {
		t.Errorf("expected ErrMissingRecipient, got: %v", err)
	}

	o = validOrder()
	o.SenderEmail = ""
	if err := o.Validate(); !errors.Is(err, ErrMissingSender) {
		t.Errorf("expected ErrMissingSender, got: %v", err)
	}
}

func TestOrderStatus(t *testing.T) {
	if OrderStatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !OrderStatusApproved.Terminal() || !OrderStatusRejected.Terminal() {
		t.Error("approved and rejected are terminal")
	}

	if !ValidDecision(OrderStatusApproved) || !ValidDecision(OrderStatusRejected) {
		t.Error("approved and rejected are valid decisions")
	}
	if ValidDecision(OrderStatusPending) || ValidDecision("shipped") {
		t.Error("only approved and rejected are valid decisions")
	}
}

func TestOrderFilterMatches(t *testing.T) {
	base := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	order := validOrder()
	order.Status = OrderStatusApproved
	order.CreatedAt = base

	if !(OrderFilter{}).Matches(order) {
		t.Error("empty filter must match everything")
	}

	f := OrderFilter{Statuses: []OrderStatus{OrderStatusRejected}}
	if f.Matches(order) {
		t.Error("status filter must exclude non-matching orders")
	}

	f = OrderFilter{From: base.Add(time.Hour)}
	if f.Matches(order) {
		t.Error("from bound must exclude earlier orders")
	}

	f = OrderFilter{From: base.Add(-time.Hour), To: base.Add(time.Hour)}
	if !f.Matches(order) {
		t.Error("order inside the window must match")
	}

	f = OrderFilter{To: base}
	if !f.Matches(order) {
		t.Error("to bound is inclusive")
	}
}
