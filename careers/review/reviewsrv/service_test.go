package reviewsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/internal/textract"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	doc *resume.Document
	err error
}

func (f fakeParser) Parse(context.Context, resume.Upload) (*resume.Document, error) {
	return f.doc, f.err
}

type fakeCompleter struct {
	reply string
	err   error
	got   []ai.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

type fakeJobs struct {
	text  string
	err   error
	calls int
}

func (f *fakeJobs) Fetch(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

const analysisJSON = `{
  "overallScore": 78, "formatScore": "80", "contentScore": 75, "skillsScore": 70,
  "atsScore": 82, "grammarScore": 90,
  "keyFindings": {"strengths": ["Clear layout"], "areasToImprove": ["Quantify results"], "criticalIssues": []},
  "improvementSuggestions": {"content": ["Add metrics"], "format": [], "atsOptimization": ["Use standard headings"]},
  "atsCompatibilityDetails": {"score": 82, "issues": [{"title": "Tables", "description": "Tables confuse parsers", "fix": "Use plain text"}]}
}`

func txtUpload(body string) resume.Upload {
	return resume.Upload{Filename: "cv.txt", ContentType: textract.MimeText, Data: []byte(body)}
}

func TestAnalyzeUsesParserText(t *testing.T) {
	completer := &fakeCompleter{reply: analysisJSON}
	svc := NewService(fakeParser{doc: &resume.Document{RawText: "Parsed: Python, SQL"}}, completer, nil, 0.4, 2000)

	a, err := svc.Analyze(context.Background(), txtUpload("local text"), "")
	require.NoError(t, err)

	assert.Equal(t, review.Score(78), a.OverallScore)
	assert.Equal(t, review.Score(80), a.FormatScore)
	assert.Equal(t, []string{"Clear layout"}, a.KeyFindings.Strengths)
	assert.Equal(t, []string{}, a.ImprovementSuggestions.Format)
	require.Len(t, a.ATSCompatibility.Issues, 1)
	assert.Nil(t, a.KeywordMatches)

	require.Len(t, completer.got, 1)
	req := completer.got[0]
	assert.Equal(t, 0.4, req.Temperature)
	assert.True(t, req.JSONObject)
	assert.Contains(t, req.Prompt, "Parsed: Python, SQL")
	assert.NotContains(t, req.Prompt, "local text")
	assert.NotContains(t, req.Prompt, "keywordMatches")
}

func TestAnalyzeFallsBackToLocalExtraction(t *testing.T) {
	completer := &fakeCompleter{reply: analysisJSON}
	svc := NewService(fakeParser{err: resume.ErrParseFailed(errors.New("503"))}, completer, nil, 0.4, 2000)

	_, err := svc.Analyze(context.Background(), txtUpload("Jane Doe\nGo developer"), "")
	require.NoError(t, err)
	assert.Contains(t, completer.got[0].Prompt, "Go developer")
}

func TestAnalyzeSurfacesParserErrorWhenNoFallback(t *testing.T) {
	completer := &fakeCompleter{reply: analysisJSON}
	svc := NewService(fakeParser{err: resume.ErrParseFailed(errors.New("503"))}, completer, nil, 0.4, 2000)

	img := resume.Upload{Filename: "cv.png", ContentType: textract.MimePNG, Data: []byte{0x89, 'P', 'N', 'G'}}
	_, err := svc.Analyze(context.Background(), img, "")
	assert.True(t, errx.IsCode(err, resume.CodeParseFailed))
	assert.Empty(t, completer.got)
}

func TestAnalyzeNoText(t *testing.T) {
	svc := NewService(nil, &fakeCompleter{reply: analysisJSON}, nil, 0.4, 2000)

	_, err := svc.Analyze(context.Background(), txtUpload("   \n  "), "")
	assert.True(t, errx.IsCode(err, resume.CodeNoText))
}

func TestAnalyzeWithJobDescription(t *testing.T) {
	completer := &fakeCompleter{reply: `{"overallScore": 70, "keywordMatches": [{"keyword": "Kubernetes", "count": 0, "recommended": 3}], "suggestedKeywords": ["Kubernetes"]}`}
	jobs := &fakeJobs{text: "We need Kubernetes and Terraform experience."}
	svc := NewService(nil, completer, jobs, 0.4, 2000)

	a, err := svc.Analyze(context.Background(), txtUpload("DevOps engineer"), "https://www.indeed.com/viewjob?jk=1")
	require.NoError(t, err)

	assert.Equal(t, 1, jobs.calls)
	assert.Equal(t, []string{"Kubernetes"}, a.SuggestedKeywords)
	require.Len(t, a.KeywordMatches, 1)
	assert.Equal(t, 3, a.KeywordMatches[0].Recommended)

	prompt := completer.got[0].Prompt
	assert.Contains(t, prompt, "Job Description:\nWe need Kubernetes")
	assert.Contains(t, prompt, "keywordMatches")
}

func TestAnalyzeJobFetchFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{reply: analysisJSON}
	jobs := &fakeJobs{err: review.ErrJobFetchFailed(errors.New("timeout"))}
	svc := NewService(nil, completer, jobs, 0.4, 2000)

	_, err := svc.Analyze(context.Background(), txtUpload("DevOps engineer"), "https://jobs.example.com/1")
	require.NoError(t, err)

	prompt := completer.got[0].Prompt
	assert.NotContains(t, prompt, "Job Description:")
	assert.Contains(t, prompt, "keywordMatches")
}

func TestAnalyzeRejectsBadJobURL(t *testing.T) {
	completer := &fakeCompleter{reply: analysisJSON}
	svc := NewService(nil, completer, &fakeJobs{}, 0.4, 2000)

	_, err := svc.Analyze(context.Background(), txtUpload("x"), "javascript:alert(1)")
	assert.True(t, errx.IsCode(err, review.CodeInvalidJobURL))
	assert.Empty(t, completer.got)
}

func TestAnalyzeModelOutput(t *testing.T) {
	t.Run("repaired", func(t *testing.T) {
		svc := NewService(nil, &fakeCompleter{reply: "```json\n{\"overallScore\": 66, \"formatScore\": 70,}\n```"}, nil, 0.4, 2000)
		a, err := svc.Analyze(context.Background(), txtUpload("cv"), "")
		require.NoError(t, err)
		assert.Equal(t, review.Score(66), a.OverallScore)
	})

	t.Run("malformed", func(t *testing.T) {
		svc := NewService(nil, &fakeCompleter{reply: "I cannot review this resume."}, nil, 0.4, 2000)
		_, err := svc.Analyze(context.Background(), txtUpload("cv"), "")
		assert.True(t, errx.IsCode(err, ai.CodeMalformedModelOutput))
	})

	t.Run("provider error", func(t *testing.T) {
		svc := NewService(nil, &fakeCompleter{err: errors.New("rate limited")}, nil, 0.4, 2000)
		_, err := svc.Analyze(context.Background(), txtUpload("cv"), "")
		assert.True(t, errx.IsCode(err, ai.CodeCompletionProvider))
	})
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	s := truncate("héllo", 2)
	assert.Equal(t, "h", s)
	assert.Equal(t, "abc", truncate("abc", 10))
}
