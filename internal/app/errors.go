package service

import (
	"errors"

	"github.com/okian/roboscout/internal/adapters/repository"
)

// Sentinel error kinds returned by the service.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidTuning  = errors.New("invalid tuning")
	ErrAllianceSize   = errors.New("each alliance must field exactly two teams")
	ErrDuplicateTeam  = errors.New("team appears more than once in the match")
	ErrNotFound       = repository.ErrNotFound
)
