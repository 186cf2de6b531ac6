package careersrv

import (
	"testing"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileSplitsRequiredSkills(t *testing.T) {
	m := modelSuggestion{
		Title:          "Backend Engineer",
		RequiredSkills: []any{"Go", "PostgreSQL", "Docker (Basic)", "go", 42, ""},
		// model claims a skill it was never told about and lists a non-string
		UserSkills: []any{"Kubernetes", "docker", nil},
	}

	s := reconcile(m, []string{"Golang", "GO"})

	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker (Basic)"}, s.RequiredSkills)
	assert.Equal(t, []string{"Go", "Docker (Basic)"}, s.UserSkills)
	assert.Equal(t, []string{"PostgreSQL"}, s.MissingSkills)
}

func TestReconcilePartitionsRequiredSkills(t *testing.T) {
	cases := []struct {
		required []any
		user     []any
		profile  []string
	}{
		{[]any{"A", "B", "C"}, []any{"a"}, nil},
		{[]any{"Excel (Advanced)", "excel", "Power BI"}, nil, []string{"EXCEL"}},
		{nil, []any{"x"}, []string{"x"}},
		{[]any{"React", "Node.js", "TypeScript"}, []any{"react", "vue"}, []string{"TypeScript"}},
	}

	for _, tc := range cases {
		s := reconcile(modelSuggestion{RequiredSkills: tc.required, UserSkills: tc.user}, tc.profile)

		required := skill.NewSet(s.RequiredSkills...)
		user := skill.NewSet(s.UserSkills...)
		for _, u := range s.UserSkills {
			assert.True(t, required.Has(u), "user skill %q must be required", u)
		}
		for _, m := range s.MissingSkills {
			assert.True(t, required.Has(m))
			assert.False(t, user.Has(m), "missing %q overlaps user skills", m)
		}
		assert.Equal(t, len(s.RequiredSkills), len(s.UserSkills)+len(s.MissingSkills))
		assert.NotNil(t, s.UserSkills)
		assert.NotNil(t, s.MissingSkills)
	}
}

func TestFitReasonsAlwaysThree(t *testing.T) {
	many := []any{
		map[string]any{"title": "1", "icon": "A"},
		map[string]any{"title": "2", "icon": "B"},
		map[string]any{"title": "3", "icon": "C"},
		map[string]any{"title": "4", "icon": "D"},
	}
	s := reconcile(modelSuggestion{FitReasons: many}, nil)
	assert.Len(t, s.FitReasons, 3)
	assert.Equal(t, "3", s.FitReasons[2].Title)

	s = reconcile(modelSuggestion{
		RequiredSkills: []any{"SQL", "Tableau"},
		FitReasons:     []any{map[string]any{"title": "Analytical", "description": "Strong reasoning"}, map[string]any{}},
		GrowthRate:     "12%",
	}, []string{"sql"})
	assert.Len(t, s.FitReasons, 3)
	assert.Equal(t, "CheckCircle", s.FitReasons[0].Icon)
	assert.Equal(t, "Skill overlap", s.FitReasons[1].Title)
	assert.Equal(t, "Growth potential", s.FitReasons[2].Title)
	assert.Contains(t, s.FitReasons[2].Description, "12%")
}

func TestLooseNestedFields(t *testing.T) {
	ms, err := decodeSuggestions(`[{
		"title": "Cloud Engineer",
		"matchScore": 80,
		"certifications": ["AWS SA", {"name": "CKA", "provider": "CNCF"}, ""],
		"fitReasons": ["Solid infrastructure background", {"title": "Automation", "description": "Terraform", "icon": "Code"}],
		"careerPath": [
			{"title": "Junior", "yearsExperience": 0, "salary": 70000, "responsibilities": "Run deploys"},
			"Principal"
		]
	}]`)
	require.NoError(t, err)
	require.Len(t, ms, 1)

	s := reconcile(ms[0], nil)
	assert.Equal(t, []career.Certification{{Name: "AWS SA"}, {Name: "CKA", Provider: "CNCF"}}, s.Certifications)
	assert.Equal(t, "Solid infrastructure background", s.FitReasons[0].Description)
	assert.Equal(t, "CheckCircle", s.FitReasons[0].Icon)
	assert.Equal(t, "Code", s.FitReasons[1].Icon)
	assert.Len(t, s.FitReasons, FitReasonCount)
	assert.Equal(t, []career.CareerLevel{
		{Title: "Junior", YearsExperience: "0", Salary: "70000", Responsibilities: []string{"Run deploys"}},
		{Title: "Principal", Responsibilities: []string{}},
	}, s.CareerPath)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 85, score(85.0))
	assert.Equal(t, 100, score(140.0))
	assert.Equal(t, 0, score(-3.0))
	assert.Equal(t, 72, score("72%"))
	assert.Equal(t, 0, score("high"))
	assert.Equal(t, 0, score(nil))
}

func TestDecodeUnwrapsKeyedList(t *testing.T) {
	got, err := decodeSuggestions(`{"careers": [{"title": "A"}, {"title": "B"}]}`)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = decodeSuggestions(`"just a string"`)
	assert.Error(t, err)
}
