package career

import (
	"context"
	"time"

	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

// ============================================================================
// Dataset
// ============================================================================

// Record is one row of the career dataset. Field names follow the CSV
// header the dataset ships with.
type Record struct {
	ID                      kernel.CareerRecordID `json:"id,omitempty" bson:"-"`
	JobPositionName         string                `json:"job_position_name" bson:"job_position_name"`
	SkillsRequired          string                `json:"skills_required" bson:"skills_required"`
	SkillsText              string                `json:"skills_text" bson:"skills_text"`
	EducationalRequirements string                `json:"educational_requirements" bson:"educational_requirements"`
	Responsibilities        string                `json:"responsibilities" bson:"responsibilities"`
	SalaryRange             string                `json:"salary_range" bson:"salary_range"`
	GrowthProjection        string                `json:"growth_projection" bson:"growth_projection"`
	JobCategory             string                `json:"job_category" bson:"job_category"`
}

// Hit is a vector search result. The stored embedding is never returned.
type Hit struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
}

// ============================================================================
// Suggestions
// ============================================================================

type Certification struct {
	Name       string `json:"name"`
	Provider   string `json:"provider"`
	Difficulty string `json:"difficulty"`
	Duration   string `json:"duration"`
	URL        string `json:"url"`
}

// FitReason explains one aspect of the fit. Icon is a Lucide icon name.
type FitReason struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CareerLevel is one rung of a career ladder
type CareerLevel struct {
	Title            string   `json:"title"`
	YearsExperience  string   `json:"yearsExperience"`
	Salary           string   `json:"salary"`
	Responsibilities []string `json:"responsibilities"`
}

// Suggestion is a recommended career path for a profile
type Suggestion struct {
	Title               string                     `json:"title"`
	Description         string                     `json:"description"`
	MatchScore          int                        `json:"matchScore"`
	SalaryRange         string                     `json:"salaryRange"`
	GrowthRate          string                     `json:"growthRate"`
	RequiredSkills      []string                   `json:"requiredSkills"`
	RecommendedSkills   []string                   `json:"recommendedSkills"`
	UserSkills          []string                   `json:"userSkills"`
	MissingSkills       []string                   `json:"missingSkills"`
	Certifications      []Certification            `json:"certifications"`
	Category            string                     `json:"category"`
	FitReasons          []FitReason                `json:"fitReasons"`
	CareerPath          []CareerLevel              `json:"careerPath"`
	DetailedFitAnalysis string                     `json:"detailedFitAnalysis"`
	SuggestedCourses    map[string][]course.Course `json:"suggestedCourses"`
}

// SavedResult is one saved batch of suggestions
type SavedResult struct {
	ID          kernel.ResultID `json:"id"`
	UID         kernel.UserID   `json:"uid"`
	Results     []Suggestion    `json:"results"`
	ContentHash string          `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ============================================================================
// Ingestion
// ============================================================================

// IngestJob is a chunk of dataset rows waiting to be embedded
type IngestJob struct {
	ID      kernel.IngestJobID `json:"id"`
	Records []Record           `json:"records"`
	Created time.Time          `json:"created"`
}

// IngestStatus reports the ingestion backlog
type IngestStatus struct {
	Queue   string `json:"queue"`
	Pending int64  `json:"pending"`
}

// ============================================================================
// Ports
// ============================================================================

// VectorIndex is the nearest-neighbour store of career records
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, limit int) ([]Hit, error)
	Insert(ctx context.Context, records []Record, vectors [][]float32) error
}

// ResultRepository stores saved suggestions. Create returns
// ErrDuplicateResult when the same content was already saved by the user.
type ResultRepository interface {
	Create(ctx context.Context, r *SavedResult) error
	GetByHash(ctx context.Context, uid kernel.UserID, hash string) (*SavedResult, error)
	ListByUser(ctx context.Context, uid kernel.UserID) ([]SavedResult, error)
}

// IngestQueue carries ingestion chunks to the workers. Dequeue returns
// nil data when the timeout elapses with nothing queued.
type IngestQueue interface {
	Enqueue(ctx context.Context, job IngestJob) error
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)
	Size(ctx context.Context) (int64, error)
	Name() string
}
