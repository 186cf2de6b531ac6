package review

import (
	"encoding/json"
	"testing"

	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAcceptsLooseValues(t *testing.T) {
	var doc struct {
		A, B, C, D, E, F Score
	}
	err := json.Unmarshal([]byte(`{"A":72,"B":"85","C":"64%","D":140,"E":-3,"F":null}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, Score(72), doc.A)
	assert.Equal(t, Score(85), doc.B)
	assert.Equal(t, Score(64), doc.C)
	assert.Equal(t, Score(100), doc.D)
	assert.Equal(t, Score(0), doc.E)
	assert.Equal(t, Score(0), doc.F)

	var bad struct{ A Score }
	assert.Error(t, json.Unmarshal([]byte(`{"A":"great"}`), &bad))
}

func TestAnalysisNormalize(t *testing.T) {
	var a Analysis
	a.Normalize()

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"strengths":[]`)
	assert.Contains(t, string(out), `"issues":[]`)
	assert.NotContains(t, string(out), "keywordMatches")
}

func TestValidateJobURL(t *testing.T) {
	assert.NoError(t, ValidateJobURL(""))
	assert.NoError(t, ValidateJobURL("https://www.indeed.com/viewjob?jk=abc"))

	for _, raw := range []string{"ftp://example.com/job", "not a url", "/relative/path"} {
		err := ValidateJobURL(raw)
		assert.True(t, errx.IsCode(err, CodeInvalidJobURL), raw)
	}
}

func TestIsIndeed(t *testing.T) {
	assert.True(t, IsIndeed("https://www.indeed.com/viewjob?jk=abc"))
	assert.True(t, IsIndeed("https://uk.indeed.co.uk/viewjob?jk=abc"))
	assert.False(t, IsIndeed("https://careers.example.com/jobs/1"))
}
