package eval

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInsufficientCards = errors.New("insufficient cards: need at least 5")
)
