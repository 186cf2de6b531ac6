package careersrv

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/internal/jsonfix"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

// modelSuggestion is the loosely typed shape models actually return.
// Skill lists may hold non-strings, scores may arrive as strings and the
// nested lists may be bare strings instead of objects.
type modelSuggestion struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	MatchScore          any    `json:"matchScore"`
	SalaryRange         string `json:"salaryRange"`
	GrowthRate          string `json:"growthRate"`
	RequiredSkills      []any  `json:"requiredSkills"`
	RecommendedSkills   []any  `json:"recommendedSkills"`
	UserSkills          []any  `json:"userSkills"`
	Certifications      []any  `json:"certifications"`
	Category            string `json:"category"`
	FitReasons          []any  `json:"fitReasons"`
	CareerPath          []any  `json:"careerPath"`
	DetailedFitAnalysis string `json:"detailedFitAnalysis"`
}

// decodeSuggestions parses completion text into suggestions. A single
// object is accepted as a one-element list, as is an object wrapping the
// list under one key.
func decodeSuggestions(raw string) ([]modelSuggestion, error) {
	var doc json.RawMessage
	stage, err := jsonfix.Decode(raw, &doc)
	if err != nil {
		return nil, ai.ErrMalformedModelOutput(err).WithDetail("stage", stage.String())
	}
	if stage == jsonfix.StageRepaired {
		logx.Debugf("career suggestions needed JSON repair")
	}

	out, err := unwrapSuggestions(doc)
	if err != nil {
		return nil, ai.ErrMalformedModelOutput(err).WithDetail("stage", stage.String())
	}
	return out, nil
}

func unwrapSuggestions(doc json.RawMessage) ([]modelSuggestion, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	switch trimmed[0] {
	case '[':
		var list []modelSuggestion
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		if _, ok := fields["title"]; !ok && len(fields) == 1 {
			for _, inner := range fields {
				if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '[' {
					return unwrapSuggestions(t)
				}
			}
		}
		var one modelSuggestion
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, err
		}
		return []modelSuggestion{one}, nil
	default:
		return nil, errors.New("expected a JSON array of suggestions")
	}
}

// score reads a number, numeric string or "85%" and clamps it to 0..100
func score(v any) int {
	var f float64
	switch s := v.(type) {
	case float64:
		f = s
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}

// stringList keeps the trimmed non-empty strings of a decoded list
func stringList(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// text reads a scalar as a trimmed string; numbers keep their shortest form
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// textList accepts a list or a single string
func textList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := text(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

func certifications(values []any) []career.Certification {
	out := make([]career.Certification, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			if name := strings.TrimSpace(t); name != "" {
				out = append(out, career.Certification{Name: name})
			}
		case map[string]any:
			c := career.Certification{
				Name:       text(t["name"]),
				Provider:   text(t["provider"]),
				Difficulty: text(t["difficulty"]),
				Duration:   text(t["duration"]),
				URL:        text(t["url"]),
			}
			if c.Name != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

func fitReasonList(values []any) []career.FitReason {
	out := make([]career.FitReason, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, career.FitReason{Description: strings.TrimSpace(t)})
		case map[string]any:
			out = append(out, career.FitReason{
				Title:       text(t["title"]),
				Description: text(t["description"]),
				Icon:        text(t["icon"]),
			})
		}
	}
	return out
}

func careerLevels(values []any) []career.CareerLevel {
	out := make([]career.CareerLevel, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			if title := strings.TrimSpace(t); title != "" {
				out = append(out, career.CareerLevel{Title: title, Responsibilities: []string{}})
			}
		case map[string]any:
			out = append(out, career.CareerLevel{
				Title:            text(t["title"]),
				YearsExperience:  text(t["yearsExperience"]),
				Salary:           text(t["salary"]),
				Responsibilities: textList(t["responsibilities"]),
			})
		}
	}
	return out
}
