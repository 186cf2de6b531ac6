package careersrv

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	"golang.org/x/crypto/blake2b"
)

// CourseFinder looks up courses for skills, keyed by the skill as given
type CourseFinder interface {
	GetCourses(ctx context.Context, skills []string) (map[string][]course.Course, error)
}

type Config struct {
	CandidateLimit int
	Temperature    float64
	MaxTokens      int
}

func DefaultConfig() Config {
	return Config{CandidateLimit: 3, Temperature: 0.7, MaxTokens: 4000}
}

type Service struct {
	users     profile.Repository
	embedder  ai.Embedder
	index     career.VectorIndex
	completer ai.Completer
	courses   CourseFinder
	results   career.ResultRepository
	cfg       Config
	now       func() time.Time
}

func NewService(
	users profile.Repository,
	embedder ai.Embedder,
	index career.VectorIndex,
	completer ai.Completer,
	courses CourseFinder,
	results career.ResultRepository,
	cfg Config,
) *Service {
	if cfg.CandidateLimit < 1 {
		cfg.CandidateLimit = DefaultConfig().CandidateLimit
	}
	return &Service{
		users:     users,
		embedder:  embedder,
		index:     index,
		completer: completer,
		courses:   courses,
		results:   results,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ============================================================================
// Analysis
// ============================================================================

// AnalyzeUser runs the matching pipeline on the stored profile of uid
func (s *Service) AnalyzeUser(ctx context.Context, uid kernel.UserID) ([]career.Suggestion, error) {
	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, user.Profile)
}

// Analyze suggests careers for a profile. A profile without skills yields
// an empty list without calling any provider.
func (s *Service) Analyze(ctx context.Context, p profile.Profile) ([]career.Suggestion, error) {
	names := p.SkillNames()
	query := skill.Query(names)
	if query == "" {
		return []career.Suggestion{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, asProviderError(err, ai.ErrEmbeddingProvider)
	}

	hits, err := s.index.Search(ctx, vector, s.cfg.CandidateLimit)
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, career.ErrVectorSearch(err)
	}
	logx.Debugf("career query %q matched %d records", query, len(hits))

	raw, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(p, query, hits, s.cfg.CandidateLimit),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, asProviderError(err, ai.ErrCompletionProvider)
	}

	decoded, err := decodeSuggestions(raw)
	if err != nil {
		return nil, err
	}

	suggestions := make([]career.Suggestion, 0, len(decoded))
	for _, m := range decoded {
		suggestions = append(suggestions, reconcile(m, names))
	}

	s.enrich(ctx, suggestions)
	return suggestions, nil
}

// enrich attaches courses for each suggestion's missing skills. Failures
// leave the suggestions with empty course maps.
func (s *Service) enrich(ctx context.Context, suggestions []career.Suggestion) {
	var missing []string
	for _, sug := range suggestions {
		missing = append(missing, sug.MissingSkills...)
	}
	if len(missing) == 0 || s.courses == nil {
		return
	}

	found, err := s.courses.GetCourses(ctx, missing)
	if err != nil {
		logx.Warnf("course enrichment skipped: %v", err)
		return
	}

	for i := range suggestions {
		for _, m := range suggestions[i].MissingSkills {
			if courses, ok := found[m]; ok {
				suggestions[i].SuggestedCourses[m] = courses
			}
		}
	}
}

func asProviderError(err error, wrap func(error) *errx.Error) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	return wrap(err)
}

// ============================================================================
// Saved results
// ============================================================================

// SaveResults stores suggestions for uid. Saving the same content twice
// returns the first entry and created=false.
func (s *Service) SaveResults(ctx context.Context, uid kernel.UserID, results []career.Suggestion) (*career.SavedResult, bool, error) {
	if len(results) == 0 {
		return nil, false, career.ErrInvalidResults()
	}
	for _, r := range results {
		if r.Title == "" {
			return nil, false, career.ErrInvalidResults().WithDetail("reason", "every result needs a title")
		}
	}

	hash, err := ContentHash(results)
	if err != nil {
		return nil, false, career.ErrInvalidResults().WithCause(err)
	}

	existing, err := s.results.GetByHash(ctx, uid, hash)
	if err == nil {
		return existing, false, nil
	}
	if !errx.IsCode(err, career.CodeResultNotFound) {
		return nil, false, err
	}

	saved := &career.SavedResult{
		ID:          kernel.NewResultID(),
		UID:         uid,
		Results:     results,
		ContentHash: hash,
		CreatedAt:   s.now(),
	}
	if err := s.results.Create(ctx, saved); err != nil {
		if errx.IsCode(err, career.CodeDuplicateResult) {
			existing, getErr := s.results.GetByHash(ctx, uid, hash)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return saved, true, nil
}

// ListResults returns the saved results of uid, newest first
func (s *Service) ListResults(ctx context.Context, uid kernel.UserID) ([]career.SavedResult, error) {
	return s.results.ListByUser(ctx, uid)
}

// ContentHash is the BLAKE2b-256 of the JSON encoding of results
func ContentHash(results []career.Suggestion) (string, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
