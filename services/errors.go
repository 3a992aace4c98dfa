package services

import "errors"

// Validation errors are rejected before any storage access and surface to the
// caller as 400 responses. Storage failures pass through untouched so the HTTP
// layer can decide on retry policy.
var (
	ErrInvalidDay      = errors.New("invalid day key, want YYYY-MM-DD")
	ErrInvalidDelta    = errors.New("delta must be at least 1")
	ErrInvalidRange    = errors.New("invalid day range")
	ErrInvalidPeriod   = errors.New("unknown leaderboard period")
	ErrInvalidCategory = errors.New("unknown leaderboard category")
)
