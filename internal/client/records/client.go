// Package records is the record client: the typed operations the UI uses
// against the remote store, with client-side validation and the duplicate
// signal turned into common.ErrDuplicate.
package records

import (
	"context"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/models"
)

// Store is the remote side of the client, implemented by agent.Agent.
type Store interface {
	AddCV(ctx context.Context, sub models.Submission) (*models.Record, error)
	GetAllCVs(ctx context.Context) ([]models.Record, error)
	DeleteAllRecords(ctx context.Context) error
}

type Client struct {
	store Store
}

func NewClient(store Store) *Client {
	return &Client{store: store}
}

// AddRecord submits a record owned by the caller. Incomplete input fails
// with common.ErrValidation before any call is made; a caller that already
// owns a record gets common.ErrDuplicate.
func (c *Client) AddRecord(ctx context.Context, name string, qualifications, skills []string) (models.Record, error) {
	sub := models.Submission{Name: name, Qualifications: qualifications, Skills: skills}
	if err := sub.Validate(); err != nil {
		return models.Record{}, err
	}

	rec, err := c.store.AddCV(ctx, sub)
	if err != nil {
		return models.Record{}, err
	}
	if rec == nil {
		return models.Record{}, common.ErrDuplicate
	}
	return *rec, nil
}

// ListRecords returns every record in store order.
func (c *Client) ListRecords(ctx context.Context) ([]models.Record, error) {
	return c.store.GetAllCVs(ctx)
}

// DeleteAllRecords removes every record of every owner. It is idempotent.
func (c *Client) DeleteAllRecords(ctx context.Context) error {
	return c.store.DeleteAllRecords(ctx)
}
