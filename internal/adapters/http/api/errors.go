package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingSlug  = errors.New("missing slug in path")
	ErrInvalidDelta = errors.New("delta must be a finite number")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
	ErrLimitTooHigh = errors.New("limit exceeds maximum")
)
