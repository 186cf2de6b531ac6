package courseinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/jmoiron/sqlx"
)

type PostgresCacheRepository struct {
	db *sqlx.DB
}

func NewPostgresCacheRepository(db *sqlx.DB) *PostgresCacheRepository {
	return &PostgresCacheRepository{db: db}
}

type cacheRow struct {
	Skill       string    `db:"skill"`
	Courses     []byte    `db:"courses"`
	LastFetched time.Time `db:"last_fetched"`
}

func (r cacheRow) toDomain() (*course.CacheEntry, error) {
	entry := &course.CacheEntry{Skill: r.Skill, LastFetched: r.LastFetched}
	if len(r.Courses) > 0 {
		if err := json.Unmarshal(r.Courses, &entry.Courses); err != nil {
			return nil, err
		}
	}
	if entry.Courses == nil {
		entry.Courses = []course.Course{}
	}
	return entry, nil
}

func (r *PostgresCacheRepository) Get(ctx context.Context, skill string) (*course.CacheEntry, error) {
	var row cacheRow
	err := r.db.GetContext(ctx, &row,
		`SELECT skill, courses, last_fetched FROM course_cache WHERE skill = $1`, skill)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, course.ErrCacheMiss().WithDetail("skill", skill)
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// Upsert replaces the entry for entry.Skill
func (r *PostgresCacheRepository) Upsert(ctx context.Context, entry course.CacheEntry) error {
	courses := entry.Courses
	if courses == nil {
		courses = []course.Course{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO course_cache (skill, courses, last_fetched)
		VALUES ($1, $2, $3)
		ON CONFLICT (skill) DO UPDATE
		SET courses = EXCLUDED.courses, last_fetched = EXCLUDED.last_fetched
	`
	_, err = r.db.ExecContext(ctx, query, entry.Skill, data, entry.LastFetched)
	return err
}
