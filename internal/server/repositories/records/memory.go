package records

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/cvboard/internal/models"
)

// MemoryRepository keeps records in process memory. It is what the replica
// runs on when no database DSN is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []models.Record
	owners  map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{owners: make(map[string]struct{})}
}

func (r *MemoryRepository) Create(ctx context.Context, id string, rec models.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[rec.Owner]; ok {
		return false, nil
	}

	rec.Qualifications = slices.Clone(rec.Qualifications)
	rec.Skills = slices.Clone(rec.Skills)

	r.owners[rec.Owner] = struct{}{}
	r.records = append(r.records, rec)
	return true, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Record, 0, len(r.records))
	for _, rec := range r.records {
		rec.Qualifications = slices.Clone(rec.Qualifications)
		rec.Skills = slices.Clone(rec.Skills)
		out = append(out, rec)
	}
	slices.SortStableFunc(out, func(a, b models.Record) int {
		switch {
		case a.PostedAt < b.PostedAt:
			return -1
		case a.PostedAt > b.PostedAt:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.records))
	r.records = nil
	r.owners = make(map[string]struct{})
	return n, nil
}

func (r *MemoryRepository) LatestPostedAt(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest int64
	for _, rec := range r.records {
		latest = max(latest, rec.PostedAt)
	}
	return latest, nil
}
