package interviewinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/careerlens/careers/interview"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

type sessionRow struct {
	ID        string    `db:"id"`
	UID       string    `db:"uid"`
	Role      string    `db:"role"`
	Questions []byte    `db:"questions"`
	CreatedAt time.Time `db:"created_at"`
}

func (r sessionRow) toDomain() (interview.Session, error) {
	s := interview.Session{
		ID:        kernel.SessionID(r.ID),
		UID:       kernel.UserID(r.UID),
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Questions, &s.Questions); err != nil {
		return interview.Session{}, err
	}
	if s.Questions == nil {
		s.Questions = []interview.QA{}
	}
	return s, nil
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s *interview.Session) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return interview.ErrInvalidSession().WithCause(err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interview_sessions (id, uid, role, questions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID.String(), s.UID.String(), s.Role, questions, s.CreatedAt)
	return err
}

func (r *PostgresSessionRepository) ListByUser(ctx context.Context, uid kernel.UserID) ([]interview.Session, error) {
	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, uid, role, questions, created_at
		FROM interview_sessions
		WHERE uid = $1
		ORDER BY created_at DESC
	`, uid.String())
	if err != nil {
		return nil, err
	}

	sessions := make([]interview.Session, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
