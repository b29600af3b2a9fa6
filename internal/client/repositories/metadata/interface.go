// Package metadata is the client's local session cache: a key/value table in
// SQLite where each value carries its own expiry.
package metadata

import (
	"context"
	"time"
)

// Entry is a cached value and the instant it stops being usable.
type Entry struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether e is no longer usable at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Purge removes every entry expired at now and reports how many.
	Purge(ctx context.Context, now time.Time) (int64, error)
}
