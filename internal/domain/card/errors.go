package card

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInvalidToken = errors.New("invalid card token")
)
