package repository

import "errors"

// Sentinel kinds for showcase errors.
var (
	ErrNotFound     = errors.New("hand not found")
	ErrInvalidLimit = errors.New("invalid showcase limit")
)
