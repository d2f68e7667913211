package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrMissingCode = errors.New("event code is required")
	ErrMissingID   = errors.New("observation id is required")
	ErrInvalidTeam = errors.New("invalid team number")
)
