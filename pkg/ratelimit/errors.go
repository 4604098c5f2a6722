package ratelimit

import "errors"

var (
	// ErrInvalidLimit is returned when the per-window limit is not positive.
	ErrInvalidLimit = errors.New("ratelimit: limit must be positive")
	// ErrInvalidWindow is returned when the window duration is not positive.
	ErrInvalidWindow = errors.New("ratelimit: window must be positive")
	// ErrKeyRequired is returned when an empty key is passed to Allow or Reset.
	ErrKeyRequired = errors.New("ratelimit: key is required")
)
