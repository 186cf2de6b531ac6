package courseapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/careers/course/coursesrv"
	"github.com/Abraxas-365/careerlens/pkg/fiberx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyCache struct{}

func (emptyCache) Get(context.Context, string) (*course.CacheEntry, error) {
	return nil, course.ErrCacheMiss()
}
func (emptyCache) Upsert(context.Context, course.CacheEntry) error { return nil }

type echoScraper struct{}

func (echoScraper) Search(_ context.Context, key string) ([]course.Course, error) {
	return []course.Course{{Name: key + " bootcamp", Provider: "Udemy", Duration: "N/A", URL: "#"}}, nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: fiberx.ErrorHandler})
	RegisterRoutes(app, NewHandlers(coursesrv.NewService(emptyCache{}, echoScraper{})))
	return app
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/career/courses", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestGetCourses(t *testing.T) {
	resp, raw := post(t, newApp(), `{"skills":["Tableau","Docker"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []course.SkillCourses
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Tableau", got[0].Skill)
	assert.Equal(t, "tableau bootcamp", got[0].Courses[0].Name)
}

func TestGetCoursesRejectsMissingSkills(t *testing.T) {
	resp, _ := post(t, newApp(), `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, newApp(), `{"skills":"Go"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCoursesEmptyList(t *testing.T) {
	resp, raw := post(t, newApp(), `{"skills":[]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}
