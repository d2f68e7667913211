package config

import "errors"

// Sentinel error kinds returned by Load and Validate.
var (
	ErrInvalidConfig = errors.New("invalid roboscout config")
	ErrLoadConfig    = errors.New("read roboscout config")
)
