package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusApproved || s == OrderStatusRejected
}

// ValidDecision reports whether s is an acceptable resolution outcome.
func ValidDecision(s OrderStatus) bool {
	return s == OrderStatusApproved || s == OrderStatusRejected
}

type Order struct {
	ID          string
	ItemCode    string
	Quantity    int
	Recipient   string
	Address     string
	Phone       string
	SenderEmail string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks field-level invariants before the order is persisted.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ItemCode) == "" {
		return ErrInvalidItemCode
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(o.Recipient) == "" || strings.TrimSpace(o.Address) == "" || strings.TrimSpace(o.Phone) == "" {
		return ErrMissingRecipient
	}
	if strings.TrimSpace(o.SenderEmail) == "" {
		return ErrMissingSender
	}
	return nil
}

// OrderFilter narrows List results. Zero values mean "no constraint".
// To matches inclusively; callers filtering by calendar day should pass the
// end of that day.
type OrderFilter struct {
	Statuses []OrderStatus
	From     time.Time
	To       time.Time
}

// Matches applies the filter to a single order.
func (f OrderFilter) Matches(o Order) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if o.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	return true
}
