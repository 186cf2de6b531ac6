package reviewsrv

import (
	"context"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/internal/jsonfix"
	"github.com/Abraxas-365/careerlens/internal/textract"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

type Service struct {
	parser      resume.Parser
	completer   ai.Completer
	jobs        review.JobDescriptionFetcher
	temperature float64
	maxTokens   int
}

// NewService builds the résumé review pipeline. parser and jobs may be nil:
// text then comes from local extraction only and job links are ignored.
func NewService(
	parser resume.Parser,
	completer ai.Completer,
	jobs review.JobDescriptionFetcher,
	temperature float64,
	maxTokens int,
) *Service {
	return &Service{
		parser:      parser,
		completer:   completer,
		jobs:        jobs,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Analyze scores a résumé, optionally against the posting at jobURL
func (s *Service) Analyze(ctx context.Context, upload resume.Upload, jobURL string) (*review.Analysis, error) {
	jobURL = strings.TrimSpace(jobURL)
	if err := review.ValidateJobURL(jobURL); err != nil {
		return nil, err
	}

	text, err := s.resumeText(ctx, upload)
	if err != nil {
		return nil, err
	}

	jd := s.jobDescription(ctx, jobURL)

	raw, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(text, jd, jobURL != ""),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		JSONObject:  true,
	})
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, ai.ErrCompletionProvider(err)
	}

	var analysis review.Analysis
	stage, err := jsonfix.Decode(raw, &analysis)
	if err != nil {
		return nil, ai.ErrMalformedModelOutput(err).WithDetail("stage", stage.String())
	}
	if stage == jsonfix.StageRepaired {
		logx.Debugf("résumé analysis needed JSON repair")
	}

	analysis.Normalize()
	return &analysis, nil
}

// resumeText prefers the parser's raw text and falls back to local
// extraction when the parser fails or returns nothing
func (s *Service) resumeText(ctx context.Context, upload resume.Upload) (string, error) {
	var parseErr error
	if s.parser != nil {
		doc, err := s.parser.Parse(ctx, upload)
		if err == nil && strings.TrimSpace(doc.RawText) != "" {
			return doc.RawText, nil
		}
		parseErr = err
	}

	text, err := textract.Extract(upload.ContentType, upload.Data)
	if err == nil && text != "" {
		if parseErr != nil {
			logx.Warnf("résumé parser failed for %s, using local extraction: %v", upload.Filename, parseErr)
		}
		return text, nil
	}

	if parseErr != nil {
		return "", parseErr
	}
	return "", resume.ErrNoText().WithDetail("filename", upload.Filename)
}

func (s *Service) jobDescription(ctx context.Context, jobURL string) string {
	if jobURL == "" || s.jobs == nil {
		return ""
	}
	jd, err := s.jobs.Fetch(ctx, jobURL)
	if err != nil {
		logx.Warnf("job description fetch failed for %s, reviewing without it: %v", jobURL, err)
		return ""
	}
	return strings.TrimSpace(jd)
}
