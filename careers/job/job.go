package job

import (
	"context"
	"strings"
	"time"
)

type Salary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Job is a posting from an external job board
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Type        string     `json:"type"`
	Remote      bool       `json:"remote"`
	Posted      *time.Time `json:"posted"`
	Description string     `json:"description"`
	Salary      *Salary    `json:"salary"`
	Link        string     `json:"link"`
	LogoURL     *string    `json:"logoUrl"`
}

// Query filters a job search. Type is a board employment type such as
// FULLTIME or CONTRACTOR, comma separated when several are wanted.
type Query struct {
	Title    string `query:"title"`
	Location string `query:"location"`
	Type     string `query:"type"`
}

func (q *Query) Normalize() {
	q.Title = strings.TrimSpace(q.Title)
	q.Location = strings.TrimSpace(q.Location)
	q.Type = strings.ToUpper(strings.ReplaceAll(q.Type, " ", ""))
}

func (q Query) Validate() error {
	if q.Title == "" {
		return ErrMissingTitle()
	}
	return nil
}

// Text renders the board search phrase, e.g. "Data Analyst jobs in Austin"
func (q Query) Text() string {
	if q.Location == "" {
		return q.Title + " jobs"
	}
	return q.Title + " jobs in " + q.Location
}

// Board searches an external job board
type Board interface {
	Search(ctx context.Context, q Query) ([]Job, error)
}
