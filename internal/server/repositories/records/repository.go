// Package records stores CV records for the development replica.
package records

import (
	"context"

	"github.com/dmitrijs2005/cvboard/internal/models"
)

// Repository persists records. At most one record exists per owner.
type Repository interface {
	// Create inserts r under id. It reports false, without error, when the
	// owner already has a record.
	Create(ctx context.Context, id string, r models.Record) (bool, error)
	// List returns every record ordered by PostedAt, ties in insertion order.
	List(ctx context.Context) ([]models.Record, error)
	// DeleteAll removes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// LatestPostedAt returns the greatest PostedAt stored, or 0.
	LatestPostedAt(ctx context.Context) (int64, error)
}
