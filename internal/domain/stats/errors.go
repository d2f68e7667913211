package stats

import "errors"

// ErrUnknownSortKey is returned by Sort for a key it does not know.
var ErrUnknownSortKey = errors.New("unknown sort key")
