// Package services contains the replica's business logic. RecordService
// enforces one record per owner and assigns non-decreasing posting times.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/dmitrijs2005/cvboard/internal/server/repositories/records"
	"github.com/dmitrijs2005/cvboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type RecordService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
}

func NewRecordService(m repomanager.RepositoryManager) *RecordService {
	return &RecordService{
		repomanager: m,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Add stores sub as owner's record. It returns common.ErrDuplicate when
// owner already has one and common.ErrValidation for incomplete input.
func (s *RecordService) Add(ctx context.Context, owner string, sub models.Submission) (models.Record, error) {
	if err := sub.Validate(); err != nil {
		return models.Record{}, err
	}

	var rec models.Record
	err := s.repomanager.InTx(ctx, func(ctx context.Context, repo records.Repository) error {
		latest, err := repo.LatestPostedAt(ctx)
		if err != nil {
			return fmt.Errorf("error reading latest posting time: %w", err)
		}

		postedAt := s.now().UnixNano()
		if postedAt < latest {
			postedAt = latest
		}

		rec = models.Record{
			Owner:          owner,
			Name:           sub.Name,
			Qualifications: sub.Qualifications,
			Skills:         sub.Skills,
			PostedAt:       postedAt,
		}

		created, err := repo.Create(ctx, s.newID(), rec)
		if err != nil {
			return fmt.Errorf("error creating record: %w", err)
		}
		if !created {
			return common.ErrDuplicate
		}
		return nil
	})
	if err != nil {
		return models.Record{}, err
	}

	return rec, nil
}

// List returns every record in posting order.
func (s *RecordService) List(ctx context.Context) ([]models.Record, error) {
	return s.repomanager.Records().List(ctx)
}

// DeleteAll removes every record regardless of owner.
func (s *RecordService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repomanager.Records().DeleteAll(ctx)
}
