package tuning

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidWeights = errors.New("invalid tuning weights")
)
