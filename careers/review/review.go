package review

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Score is a 0-100 rating. Models sometimes send scores as strings such as
// "85" or "85%", both are accepted.
type Score int

var scoreType = reflect.TypeOf(Score(0))

func (s *Score) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: scoreType}
	}
	*s = clamp(f)
	return nil
}

func clamp(f float64) Score {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 100:
		return 100
	default:
		return Score(math.Round(f))
	}
}

type KeyFindings struct {
	Strengths      []string `json:"strengths"`
	AreasToImprove []string `json:"areasToImprove"`
	CriticalIssues []string `json:"criticalIssues"`
}

type ImprovementSuggestions struct {
	Content         []string `json:"content"`
	Format          []string `json:"format"`
	ATSOptimization []string `json:"atsOptimization"`
}

type ATSIssue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Fix         string `json:"fix"`
}

type ATSCompatibility struct {
	Score  Score      `json:"score"`
	Issues []ATSIssue `json:"issues"`
}

type KeywordMatch struct {
	Keyword     string `json:"keyword"`
	Count       int    `json:"count"`
	Recommended int    `json:"recommended"`
}

// Analysis is the scored review of one résumé. KeywordMatches and
// SuggestedKeywords are only filled when a job posting was given.
type Analysis struct {
	OverallScore           Score                  `json:"overallScore"`
	FormatScore            Score                  `json:"formatScore"`
	ContentScore           Score                  `json:"contentScore"`
	SkillsScore            Score                  `json:"skillsScore"`
	ATSScore               Score                  `json:"atsScore"`
	GrammarScore           Score                  `json:"grammarScore"`
	KeyFindings            KeyFindings            `json:"keyFindings"`
	ImprovementSuggestions ImprovementSuggestions `json:"improvementSuggestions"`
	ATSCompatibility       ATSCompatibility       `json:"atsCompatibilityDetails"`
	KeywordMatches         []KeywordMatch         `json:"keywordMatches,omitempty"`
	SuggestedKeywords      []string               `json:"suggestedKeywords,omitempty"`
}

// Normalize replaces nil lists with empty ones so clients always see arrays
func (a *Analysis) Normalize() {
	a.KeyFindings.Strengths = orEmpty(a.KeyFindings.Strengths)
	a.KeyFindings.AreasToImprove = orEmpty(a.KeyFindings.AreasToImprove)
	a.KeyFindings.CriticalIssues = orEmpty(a.KeyFindings.CriticalIssues)
	a.ImprovementSuggestions.Content = orEmpty(a.ImprovementSuggestions.Content)
	a.ImprovementSuggestions.Format = orEmpty(a.ImprovementSuggestions.Format)
	a.ImprovementSuggestions.ATSOptimization = orEmpty(a.ImprovementSuggestions.ATSOptimization)
	if a.ATSCompatibility.Issues == nil {
		a.ATSCompatibility.Issues = []ATSIssue{}
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// JobDescriptionFetcher loads the text of a job posting
type JobDescriptionFetcher interface {
	Fetch(ctx context.Context, jobURL string) (string, error)
}

// ValidateJobURL accepts an empty value or an absolute http(s) URL
func ValidateJobURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidJobURL().WithDetail("jobUrl", raw)
	}
	return nil
}

// IsIndeed reports whether jobURL points at an Indeed posting
func IsIndeed(jobURL string) bool {
	u, err := url.Parse(jobURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "indeed.com" || strings.HasSuffix(host, ".indeed.com") || strings.Contains(host, "indeed.")
}
