package repository

import "time"

const defaultMaxResults = 50

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithClock sets the clock used to stamp samples and inspections that
// arrive without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxResults caps the number of teams FindTeams returns.
func WithMaxResults(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxResults = n
		}
	}
}
