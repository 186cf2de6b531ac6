package interviewapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/careerlens/careers/interview"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewsrv"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/pkg/fiberx"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth/authtest"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedCompleter struct{}

func (cannedCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	if strings.Contains(req.System, "evaluating") {
		return "Strong response with real project examples.", nil
	}
	return "What's your experience with SQL?", nil
}

type sessions struct{ saved []interview.Session }

func (s *sessions) Create(_ context.Context, session *interview.Session) error {
	s.saved = append(s.saved, *session)
	return nil
}

func (s *sessions) ListByUser(_ context.Context, uid kernel.UserID) ([]interview.Session, error) {
	out := []interview.Session{}
	for _, session := range s.saved {
		if session.UID == uid {
			out = append(out, session)
		}
	}
	return out, nil
}

func newApp() *fiber.App {
	svc := interviewsrv.NewService(cannedCompleter{}, &sessions{}, 0.7)
	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	RegisterRoutes(app, NewHandlers(svc), authtest.Middleware())
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body, bearer string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestFirstQuestion(t *testing.T) {
	app := newApp()

	status, _ := call(t, app, http.MethodPost, "/api/interview/first-question", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, app, http.MethodPost, "/api/interview/first-question", `{"role":"Data Analyst"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "What's your experience with SQL?", body["question"])
}

func TestFeedback(t *testing.T) {
	app := newApp()

	status, _ := call(t, app, http.MethodPost, "/api/interview/feedback", `{"role":"DevOps Engineer"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, app, http.MethodPost, "/api/interview/feedback",
		`{"role":"DevOps Engineer","question":"Tell me about a deployment challenge","answer":"We had a rollback issue in Jenkins..."}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Strong response with real project examples.", body["feedback"])
}

func TestNextQuestion(t *testing.T) {
	app := newApp()

	status, _ := call(t, app, http.MethodPost, "/api/interview/next-question", `{"role":"SRE","previousAnswer":"A"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, app, http.MethodPost, "/api/interview/next-question",
		`{"role":"SRE","previousQuestion":"Q","previousAnswer":"A"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["question"])
}

func TestSaveAndHistory(t *testing.T) {
	app := newApp()
	bearer := authtest.Bearer(t, "test123", iam.RoleUser)

	status, _ := call(t, app, http.MethodPost, "/api/interview/save", `{"role":"DevOps Engineer","questions":[]}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := call(t, app, http.MethodPost, "/api/interview/save", `{}`, bearer)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid data", body["message"])

	status, body = call(t, app, http.MethodPost, "/api/interview/save",
		`{"role":"DevOps Engineer","questions":[{"question":"Q1","answer":"A1","feedback":"Good"}]}`, bearer)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Session saved", body["message"])

	req := httptest.NewRequest(http.MethodGet, "/api/interview/interview-history", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []interview.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, "DevOps Engineer", history[0].Role)
}
