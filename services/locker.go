package services

import (
	"context"
	"time"
)

// Locker provides best-effort distributed locking around the booking
// check-then-insert window. The partial unique index remains the
// authoritative conflict guard; the lock only narrows the race so most
// conflicts are caught before touching the appointment table.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}

// NopLocker always grants the lock. Used in tests and as a fallback when
// Redis is unavailable at startup.
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (NopLocker) Release(ctx context.Context, key, value string) error {
	return nil
}
