package course

import (
	"context"
	"time"
)

// Course is a learning resource recommended for a skill
type Course struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
}

// CacheEntry holds the courses fetched for one normalized skill
type CacheEntry struct {
	Skill       string    `json:"skill"`
	Courses     []Course  `json:"courses"`
	LastFetched time.Time `json:"lastFetched"`
}

// SkillCourses pairs a requested skill with its courses for API responses
type SkillCourses struct {
	Skill   string   `json:"skill"`
	Courses []Course `json:"courses"`
}

// ============================================================================
// Ports
// ============================================================================

// Repository stores one entry per normalized skill. Get returns
// ErrCacheMiss when no entry exists.
type Repository interface {
	Get(ctx context.Context, skill string) (*CacheEntry, error)
	Upsert(ctx context.Context, entry CacheEntry) error
}

// Scraper fetches courses for a skill from an external catalogue
type Scraper interface {
	Search(ctx context.Context, skill string) ([]Course, error)
}
