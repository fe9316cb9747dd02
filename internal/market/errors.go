package market

import "errors"

var (
	ErrNotFound        = errors.New("Target not found")
	ErrTransport       = errors.New("Network request failed")
	ErrInvalidQuantity = errors.New("Quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("Price must be greater than zero")
	ErrInvalidStatus   = errors.New("Unknown status")
)
