package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cvboard/internal/dbx"
	"github.com/dmitrijs2005/cvboard/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// Tag lists are stored as JSONB arrays.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, id string, rec models.Record) (bool, error) {
	qualifications, err := json.Marshal(rec.Qualifications)
	if err != nil {
		return false, fmt.Errorf("encode qualifications: %w", err)
	}
	skills, err := json.Marshal(rec.Skills)
	if err != nil {
		return false, fmt.Errorf("encode skills: %w", err)
	}

	query := `
		INSERT INTO records (id, owner, name, qualifications, skills, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		id, rec.Owner, rec.Name, string(qualifications), string(skills), rec.PostedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `
		SELECT owner, name, qualifications, skills, posted_at
		FROM records
		ORDER BY posted_at, seq
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		var (
			rec                    models.Record
			qualifications, skills []byte
		)
		if err := rows.Scan(&rec.Owner, &rec.Name, &qualifications, &skills, &rec.PostedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if err := json.Unmarshal(qualifications, &rec.Qualifications); err != nil {
			return nil, fmt.Errorf("decode qualifications: %w", err)
		}
		if err := json.Unmarshal(skills, &rec.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) LatestPostedAt(ctx context.Context) (int64, error) {
	var latest int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(posted_at), 0) FROM records`).Scan(&latest)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return latest, nil
}
