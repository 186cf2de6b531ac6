package careerinfra

import (
	"context"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

// PgVectorIndex keeps career records in Postgres with a vector(1536)
// column and ranks them by cosine distance
type PgVectorIndex struct {
	db        *sqlx.DB
	dimension int
}

func NewPgVectorIndex(db *sqlx.DB, dimension int) *PgVectorIndex {
	return &PgVectorIndex{db: db, dimension: dimension}
}

type recordRow struct {
	ID                      string  `db:"id"`
	JobPositionName         string  `db:"job_position_name"`
	SkillsRequired          string  `db:"skills_required"`
	SkillsText              string  `db:"skills_text"`
	EducationalRequirements string  `db:"educational_requirements"`
	Responsibilities        string  `db:"responsibilities"`
	SalaryRange             string  `db:"salary_range"`
	GrowthProjection        string  `db:"growth_projection"`
	JobCategory             string  `db:"job_category"`
	Score                   float64 `db:"score"`
}

func (r recordRow) toDomain() career.Hit {
	return career.Hit{
		Record: career.Record{
			ID:                      kernel.CareerRecordID(r.ID),
			JobPositionName:         r.JobPositionName,
			SkillsRequired:          r.SkillsRequired,
			SkillsText:              r.SkillsText,
			EducationalRequirements: r.EducationalRequirements,
			Responsibilities:        r.Responsibilities,
			SalaryRange:             r.SalaryRange,
			GrowthProjection:        r.GrowthProjection,
			JobCategory:             r.JobCategory,
		},
		Score: r.Score,
	}
}

// Search returns the limit nearest records. The embedding column is never
// selected.
func (x *PgVectorIndex) Search(ctx context.Context, vector []float32, limit int) ([]career.Hit, error) {
	if x.dimension > 0 && len(vector) != x.dimension {
		return nil, career.ErrDimension().
			WithDetail("expected", x.dimension).
			WithDetail("got", len(vector))
	}

	query := `
		SELECT
			id, job_position_name, skills_required, skills_text,
			educational_requirements, responsibilities, salary_range,
			growth_projection, job_category,
			1 - (embedding <=> $1) AS score
		FROM career_records
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	var rows []recordRow
	if err := x.db.SelectContext(ctx, &rows, query, pgvector.NewVector(vector), limit); err != nil {
		return nil, career.ErrVectorSearch(err).WithDetail("backend", "pgvector")
	}

	hits := make([]career.Hit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, row.toDomain())
	}
	return hits, nil
}

// Insert stores records with their embeddings in one transaction
func (x *PgVectorIndex) Insert(ctx context.Context, records []career.Record, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return career.ErrRegistry.New(career.CodeVectorInsert).
			WithDetail("records", len(records)).
			WithDetail("vectors", len(vectors))
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return career.ErrVectorInsert(err).WithDetail("operation", "begin_transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO career_records (
			id, job_position_name, skills_required, skills_text,
			educational_requirements, responsibilities, salary_range,
			growth_projection, job_category, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return career.ErrVectorInsert(err).WithDetail("operation", "prepare")
	}
	defer stmt.Close()

	for i, rec := range records {
		if x.dimension > 0 && len(vectors[i]) != x.dimension {
			return career.ErrDimension().
				WithDetail("expected", x.dimension).
				WithDetail("got", len(vectors[i]))
		}
		id := rec.ID
		if id.IsEmpty() {
			id = kernel.NewCareerRecordID()
		}
		_, err := stmt.ExecContext(ctx,
			id.String(),
			rec.JobPositionName,
			rec.SkillsRequired,
			rec.SkillsText,
			rec.EducationalRequirements,
			rec.Responsibilities,
			rec.SalaryRange,
			rec.GrowthProjection,
			rec.JobCategory,
			pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return career.ErrVectorInsert(err).WithDetail("row", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return career.ErrVectorInsert(err).WithDetail("operation", "commit")
	}
	return nil
}
