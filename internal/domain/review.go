package domain

import "time"

// Review is read-only from this service's perspective; rows are written by
// the account platform. UserID is always present, the rest is optional.
type Review struct {
	ID        int64
	UserID    int64
	Rating    *float64
	Title     *string
	Text      *string
	CreatedAt *time.Time
	RawJSON   []byte // full source payload
}
