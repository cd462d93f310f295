package storeerrors

import "errors"

var (
	ErrNoActiveCart    = errors.New("no active cart")
	ErrCartNotFound    = errors.New("cart not found")
	ErrInitFailed      = errors.New("cart initialization failed")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
