package interview

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

// ScriptLength is the number of questions in a full interview script
const ScriptLength = 10

// QA is one answered question of a session
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

// Session is a finished mock interview. Sessions are never edited.
type Session struct {
	ID        kernel.SessionID `json:"id"`
	UID       kernel.UserID    `json:"uid"`
	Role      string           `json:"role"`
	Questions []QA             `json:"questions"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Repository persists sessions. ListByUser returns newest first.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	ListByUser(ctx context.Context, uid kernel.UserID) ([]Session, error)
}

// ============================================================================
// Requests
// ============================================================================

type FirstQuestionRequest struct {
	Role string `json:"role"`
}

func (r FirstQuestionRequest) Validate() error {
	return requireFields(map[string]string{"role": r.Role})
}

type NextQuestionRequest struct {
	Role             string `json:"role"`
	PreviousQuestion string `json:"previousQuestion"`
	PreviousAnswer   string `json:"previousAnswer"`
}

func (r NextQuestionRequest) Validate() error {
	return requireFields(map[string]string{
		"role":             r.Role,
		"previousQuestion": r.PreviousQuestion,
		"previousAnswer":   r.PreviousAnswer,
	})
}

type FeedbackRequest struct {
	Role     string `json:"role"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (r FeedbackRequest) Validate() error {
	return requireFields(map[string]string{
		"role":     r.Role,
		"question": r.Question,
		"answer":   r.Answer,
	})
}

type SaveRequest struct {
	Role      string `json:"role"`
	Questions []QA   `json:"questions"`
}

func (r SaveRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" || len(r.Questions) == 0 {
		return ErrInvalidSession()
	}
	return nil
}

func requireFields(fields map[string]string) error {
	var missing []string
	for _, name := range []string{"role", "question", "answer", "previousQuestion", "previousAnswer"} {
		v, ok := fields[name]
		if ok && strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ErrMissingFields().WithDetail("missing", missing)
	}
	return nil
}
