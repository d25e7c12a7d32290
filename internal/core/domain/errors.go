package domain

import "errors"

var (
	// ErrInsufficientStock means the requested amount exceeds what is
	// available (quantity minus outstanding holds) for the item.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrItemNotFound means the item code has never been stocked. A known
	// code whose quantity has reached zero is not this error.
	ErrItemNotFound = errors.New("item not found")

	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition means the order already reached a terminal
	// status; approved and rejected orders are immutable.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrUnauthorized     = errors.New("unauthorized")
	ErrDuplicateRequest = errors.New("duplicate request")

	ErrInvalidItemCode  = errors.New("item code is required")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrMissingRecipient = errors.New("recipient, address and phone are required")
	ErrMissingSender    = errors.New("sender identity is required")
)
