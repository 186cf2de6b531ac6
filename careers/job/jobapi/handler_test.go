package jobapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/careerlens/careers/job"
	"github.com/Abraxas-365/careerlens/careers/job/jobsrv"
	"github.com/Abraxas-365/careerlens/pkg/fiberx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	jobs []job.Job
	err  error
	got  job.Query
}

func (f *fakeBoard) Search(_ context.Context, q job.Query) ([]job.Job, error) {
	f.got = q
	return f.jobs, f.err
}

func newApp(board job.Board) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	RegisterRoutes(app, NewHandlers(jobsrv.NewService(board)))
	return app
}

func TestSearch(t *testing.T) {
	board := &fakeBoard{jobs: []job.Job{{ID: "1", Title: "Data Analyst", Company: "Acme", Link: "https://a"}}}
	app := newApp(board)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/search?title=Data+Analyst&location=Austin&type=fulltime", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var jobs []job.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, job.Query{Title: "Data Analyst", Location: "Austin", Type: "FULLTIME"}, board.got)
}

func TestSearchErrors(t *testing.T) {
	app := newApp(&fakeBoard{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/search?location=Austin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	app = newApp(&fakeBoard{err: errors.New("connection reset")})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/search?title=SRE", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSearchEmptyIsArray(t *testing.T) {
	app := newApp(&fakeBoard{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/search?title=SRE", nil), -1)
	require.NoError(t, err)

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "[]", string(raw))
}
