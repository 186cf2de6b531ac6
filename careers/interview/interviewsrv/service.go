package interviewsrv

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/interview"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/internal/jsonfix"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

type Service struct {
	completer   ai.Completer
	repo        interview.Repository
	temperature float64
	now         func() time.Time
}

func NewService(completer ai.Completer, repo interview.Repository, temperature float64) *Service {
	return &Service{
		completer:   completer,
		repo:        repo,
		temperature: temperature,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// FirstQuestion opens an interview for a role
func (s *Service) FirstQuestion(ctx context.Context, req interview.FirstQuestionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.ask(ctx, firstQuestionSystem, firstQuestionPrompt(strings.TrimSpace(req.Role)))
}

// Script returns a full list of interview questions for a role. The model
// is asked for a JSON array; plain numbered lines are accepted too.
func (s *Service) Script(ctx context.Context, req interview.FirstQuestionRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, scriptSystem, scriptPrompt(strings.TrimSpace(req.Role), interview.ScriptLength))
	if err != nil {
		return nil, err
	}

	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return nil, interview.ErrEmptyQuestion().WithDetail("role", req.Role)
	}
	if len(questions) > interview.ScriptLength {
		questions = questions[:interview.ScriptLength]
	}
	return questions, nil
}

// NextQuestion probes deeper after a weak answer or moves on after a
// strong one
func (s *Service) NextQuestion(ctx context.Context, req interview.NextQuestionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.ask(ctx, followUpSystem, followUpPrompt(req.Role, req.PreviousQuestion, req.PreviousAnswer))
}

// Feedback evaluates one answer in a few sentences
func (s *Service) Feedback(ctx context.Context, req interview.FeedbackRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.complete(ctx, feedbackSystem, feedbackPrompt(req.Role, req.Question, req.Answer))
}

// Save stores a finished session for uid
func (s *Service) Save(ctx context.Context, uid kernel.UserID, req interview.SaveRequest) (*interview.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session := &interview.Session{
		ID:        kernel.NewSessionID(),
		UID:       uid,
		Role:      strings.TrimSpace(req.Role),
		Questions: req.Questions,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	logx.Infof("saved interview session %s for %s (%d questions)", session.ID, uid, len(session.Questions))
	return session, nil
}

// History lists the sessions of uid, newest first
func (s *Service) History(ctx context.Context, uid kernel.UserID) ([]interview.Session, error) {
	return s.repo.ListByUser(ctx, uid)
}

func (s *Service) ask(ctx context.Context, system, prompt string) (string, error) {
	text, err := s.complete(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", interview.ErrEmptyQuestion()
	}
	return text, nil
}

func (s *Service) complete(ctx context.Context, system, prompt string) (string, error) {
	text, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		if _, ok := errx.As(err); ok {
			return "", err
		}
		return "", ai.ErrCompletionProvider(err)
	}
	return strings.TrimSpace(text), nil
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]+|\(?\d+[.)\]:]|Q\d+[.):])\s*`)

// parseQuestions reads a JSON string array, falling back to one question
// per line with numbering and bullets stripped
func parseQuestions(raw string) []string {
	var list []string
	if _, err := jsonfix.Decode(raw, &list); err == nil {
		if qs := trimQuestions(list); len(qs) > 0 {
			return qs
		}
	}

	return questionLines(strings.Split(jsonfix.StripFences(raw), "\n"))
}

func trimQuestions(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if q := strings.TrimSpace(item); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// questionLines keeps the list items of a plain-text reply. Headings ending
// in ':' are dropped, as is any preamble before the first marked line.
func questionLines(lines []string) []string {
	marked := false
	for _, line := range lines {
		if listMarker.MatchString(line) {
			marked = true
			break
		}
	}

	out := make([]string, 0, len(lines))
	listing := !marked
	for _, line := range lines {
		if listMarker.MatchString(line) {
			listing = true
		}
		if !listing {
			continue
		}
		q := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		q = strings.TrimSpace(strings.Trim(strings.TrimSuffix(q, ","), `"`))
		if q == "" || q == "[" || q == "]" || strings.HasSuffix(q, ":") {
			continue
		}
		out = append(out, q)
	}
	return out
}
