package careersrv

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/careers/skill"
)

// FitReasonCount is the number of fit reasons every suggestion carries
const FitReasonCount = 3

// reconcile recomputes the skill split of a model suggestion against the
// profile. Required skills keep their spelling; membership is decided on
// normalized names, and the model's own userSkills only count where they
// name a required skill.
func reconcile(m modelSuggestion, profileSkills []string) career.Suggestion {
	required := skill.Dedupe(stringList(m.RequiredSkills))

	owned := skill.NewSet(profileSkills...)
	for _, v := range m.UserSkills {
		if n := skill.NormalizeValue(v); n != "" {
			owned.Add(n)
		}
	}

	userSkills := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, r := range required {
		if owned.Has(r) {
			userSkills = append(userSkills, r)
		} else {
			missing = append(missing, r)
		}
	}

	s := career.Suggestion{
		Title:               strings.TrimSpace(m.Title),
		Description:         m.Description,
		MatchScore:          score(m.MatchScore),
		SalaryRange:         m.SalaryRange,
		GrowthRate:          m.GrowthRate,
		RequiredSkills:      required,
		RecommendedSkills:   skill.Dedupe(stringList(m.RecommendedSkills)),
		UserSkills:          userSkills,
		MissingSkills:       missing,
		Certifications:      certifications(m.Certifications),
		Category:            m.Category,
		CareerPath:          careerLevels(m.CareerPath),
		DetailedFitAnalysis: m.DetailedFitAnalysis,
		SuggestedCourses:    map[string][]course.Course{},
	}
	s.FitReasons = fitReasons(fitReasonList(m.FitReasons), s)
	return s
}

// fitReasons truncates to FitReasonCount or pads with reasons derived
// from the reconciled suggestion
func fitReasons(given []career.FitReason, s career.Suggestion) []career.FitReason {
	out := make([]career.FitReason, 0, FitReasonCount)
	for _, r := range given {
		if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == "" {
			continue
		}
		if strings.TrimSpace(r.Icon) == "" {
			r.Icon = "CheckCircle"
		}
		out = append(out, r)
		if len(out) == FitReasonCount {
			return out
		}
	}

	for _, r := range derivedReasons(s) {
		if len(out) == FitReasonCount {
			break
		}
		out = append(out, r)
	}
	return out
}

func derivedReasons(s career.Suggestion) []career.FitReason {
	overlap := fmt.Sprintf("You already have %d of the %d skills this role requires.",
		len(s.UserSkills), len(s.RequiredSkills))
	if len(s.UserSkills) > 0 {
		overlap += " Matching: " + strings.Join(s.UserSkills, ", ") + "."
	}

	growth := "This field offers room to grow."
	if s.GrowthRate != "" {
		growth = "Projected growth: " + s.GrowthRate + "."
	}

	learning := "Your current skills cover the core requirements."
	if len(s.MissingSkills) > 0 {
		learning = "Close the gap by learning " + strings.Join(s.MissingSkills, ", ") + "."
	}

	return []career.FitReason{
		{Title: "Skill overlap", Description: overlap, Icon: "CheckCircle"},
		{Title: "Growth potential", Description: growth, Icon: "TrendingUp"},
		{Title: "Clear learning path", Description: learning, Icon: "BookOpen"},
	}
}
