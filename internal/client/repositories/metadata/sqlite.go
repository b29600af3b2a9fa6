package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (Entry, error) {
	var (
		value   string
		expires int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT value, expires_at FROM session_cache WHERE key = ?`, key).Scan(&value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, common.ErrorNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get session_cache[%s]: %w", key, err)
	}
	return Entry{Value: value, ExpiresAt: time.Unix(expires, 0)}, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, e.Value, e.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to set session_cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_cache WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session_cache[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_cache`)
	if err != nil {
		return fmt.Errorf("failed to clear session_cache: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_cache WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge session_cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
