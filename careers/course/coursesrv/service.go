package coursesrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

// Service is a read-through course cache in front of a scraper
type Service struct {
	repo    course.Repository
	scraper course.Scraper
	now     func() time.Time
}

func NewService(repo course.Repository, scraper course.Scraper) *Service {
	return &Service{
		repo:    repo,
		scraper: scraper,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetCourses returns the courses for each requested skill, keyed by the
// skill as given. Skills sharing a normalized form are looked up once.
// A skill whose lookup fails maps to an empty list and is not cached.
func (s *Service) GetCourses(ctx context.Context, skills []string) (map[string][]course.Course, error) {
	result := make(map[string][]course.Course, len(skills))
	resolved := make(map[string][]course.Course, len(skills))

	for _, name := range skills {
		name = strings.TrimSpace(name)
		key := skill.Normalize(name)
		if key == "" {
			continue
		}
		if courses, ok := resolved[key]; ok {
			result[name] = courses
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		courses := s.lookup(ctx, key)
		resolved[key] = courses
		result[name] = courses
	}
	return result, nil
}

// CoursesFor is GetCourses shaped as an ordered list for API responses
func (s *Service) CoursesFor(ctx context.Context, skills []string) ([]course.SkillCourses, error) {
	byName, err := s.GetCourses(ctx, skills)
	if err != nil {
		return nil, err
	}
	out := make([]course.SkillCourses, 0, len(byName))
	seen := make(map[string]bool, len(byName))
	for _, name := range skills {
		name = strings.TrimSpace(name)
		courses, ok := byName[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, course.SkillCourses{Skill: name, Courses: courses})
	}
	return out, nil
}

func (s *Service) lookup(ctx context.Context, key string) []course.Course {
	entry, err := s.repo.Get(ctx, key)
	if err == nil {
		return entry.Courses
	}
	if !errx.IsCode(err, course.CodeCacheMiss) {
		logx.Warnf("course cache read for %q: %v", key, err)
		return []course.Course{}
	}

	courses, err := s.scraper.Search(ctx, key)
	if err != nil {
		logx.Warnf("course scrape for %q: %v", key, err)
		return []course.Course{}
	}
	if courses == nil {
		courses = []course.Course{}
	}

	entry = &course.CacheEntry{Skill: key, Courses: courses, LastFetched: s.now()}
	if err := s.repo.Upsert(ctx, *entry); err != nil {
		logx.Warnf("course cache write for %q: %v", key, err)
	}
	return courses
}
