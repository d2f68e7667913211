package source

import "errors"

// Sentinel kinds for fixture errors.
var (
	ErrMalformed   = errors.New("malformed fixture file")
	ErrMissingCode = errors.New("catalog entry without event code")
)
