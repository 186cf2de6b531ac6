package careerinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/pkg/dbx"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresResultRepository struct {
	db *sqlx.DB
}

func NewPostgresResultRepository(db *sqlx.DB) *PostgresResultRepository {
	return &PostgresResultRepository{db: db}
}

type resultRow struct {
	ID          string    `db:"id"`
	UID         string    `db:"uid"`
	Results     []byte    `db:"results"`
	ContentHash string    `db:"content_hash"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r resultRow) toDomain() (career.SavedResult, error) {
	out := career.SavedResult{
		ID:          kernel.ResultID(r.ID),
		UID:         kernel.UserID(r.UID),
		ContentHash: r.ContentHash,
		CreatedAt:   r.CreatedAt,
	}
	if err := json.Unmarshal(r.Results, &out.Results); err != nil {
		return career.SavedResult{}, err
	}
	return out, nil
}

const resultColumns = `id, uid, results, content_hash, created_at`

func (r *PostgresResultRepository) Create(ctx context.Context, res *career.SavedResult) error {
	data, err := json.Marshal(res.Results)
	if err != nil {
		return career.ErrInvalidResults().WithCause(err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO career_results (id, uid, results, content_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, res.ID.String(), res.UID.String(), data, res.ContentHash, res.CreatedAt)
	if dbx.IsUniqueViolation(err) {
		return career.ErrDuplicateResult().WithDetail("uid", res.UID)
	}
	return err
}

func (r *PostgresResultRepository) GetByHash(ctx context.Context, uid kernel.UserID, hash string) (*career.SavedResult, error) {
	var row resultRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+resultColumns+` FROM career_results WHERE uid = $1 AND content_hash = $2`,
		uid.String(), hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, career.ErrResultNotFound().WithDetail("uid", uid)
	}
	if err != nil {
		return nil, err
	}
	out, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns the user's saved results, newest first
func (r *PostgresResultRepository) ListByUser(ctx context.Context, uid kernel.UserID) ([]career.SavedResult, error) {
	var rows []resultRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+resultColumns+` FROM career_results WHERE uid = $1 ORDER BY created_at DESC`,
		uid.String())
	if err != nil {
		return nil, err
	}

	out := make([]career.SavedResult, 0, len(rows))
	for _, row := range rows {
		res, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
