package repomanager

import (
	"context"

	"github.com/dmitrijs2005/cvboard/internal/server/repositories/records"
)

// RepositoryManager vends the replica's repositories and the unit of work
// used by writes that must observe a consistent latest posting time.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Records() records.Repository
	// InTx runs fn with a repository bound to a unit of work that excludes
	// concurrent writers until fn returns.
	InTx(ctx context.Context, fn func(ctx context.Context, repo records.Repository) error) error
	Close() error
}
