package profileinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/pkg/dbx"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `uid, email, name, role, provider, profile, created_at, updated_at`

func (r *PostgresUserRepository) GetByUID(ctx context.Context, uid kernel.UserID) (*profile.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrUserNotFound().WithDetail("uid", uid)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *profile.User) error {
	data, err := marshalProfile(u.Profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (uid, email, name, role, provider, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		u.UID.String(),
		u.Email.String(),
		u.Name,
		u.Role.String(),
		u.Provider,
		data,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if dbx.IsUniqueViolation(err) {
		return profile.ErrUserAlreadyExists().WithDetail("uid", u.UID)
	}
	return err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, uid kernel.UserID, p profile.Profile) (*profile.User, error) {
	data, err := marshalProfile(p)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE users
		SET profile = $2, updated_at = $3
		WHERE uid = $1
		RETURNING ` + userColumns

	var row userRow
	err = r.db.GetContext(ctx, &row, query, uid.String(), data, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrUserNotFound().WithDetail("uid", uid)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}
