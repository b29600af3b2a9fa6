package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cvboard/internal/server/repositories/records"
)

// MemoryRepositoryManager keeps records in process memory. It backs the
// replica when no database DSN is configured, and tests.
type MemoryRepositoryManager struct {
	mu   sync.Mutex
	repo *records.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: records.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Records() records.Repository { return m.repo }

// InTx serializes units of work. There is no rollback: the memory
// repository applies each call atomically on its own.
func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repo records.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m.repo)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
