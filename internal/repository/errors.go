package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("row not found")

	// ErrSlotTaken maps the unique index on
	// (user_id, platform, scheduled_at); the bulk scheduler retries the
	// next candidate slot when it sees this.
	ErrSlotTaken = errors.New("scheduling slot already taken")
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
