package reviewinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	items string
	err   error
	actor string
	input any
}

func (f *fakeRunner) RunSync(_ context.Context, actor string, input any, out any) error {
	f.actor, f.input = actor, input
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.items), out)
}

func TestIndeedFetcher(t *testing.T) {
	runner := &fakeRunner{items: `[{"description":""},{"description":"  Build data pipelines.  "}]`}
	f := NewIndeedFetcher(runner, "")

	jd, err := f.Fetch(context.Background(), "https://www.indeed.com/viewjob?jk=1")
	require.NoError(t, err)
	assert.Equal(t, "Build data pipelines.", jd)
	assert.Equal(t, DefaultIndeedActor, runner.actor)

	raw, err := json.Marshal(runner.input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startUrls":[{"url":"https://www.indeed.com/viewjob?jk=1"}],"proxyConfiguration":{"useApifyProxy":true}}`, string(raw))
}

func TestIndeedFetcherErrors(t *testing.T) {
	_, err := NewIndeedFetcher(&fakeRunner{items: `[]`}, "").Fetch(context.Background(), "https://indeed.com/x")
	assert.True(t, errx.IsCode(err, review.CodeNoJobDescription))

	_, err = NewIndeedFetcher(&fakeRunner{err: errors.New("402")}, "").Fetch(context.Background(), "https://indeed.com/x")
	assert.True(t, errx.IsCode(err, review.CodeJobFetchFailed))
}

func TestPageFetcherPrefersDescriptionBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Data Analyst - Acme</title></head>
<body><nav>Home Jobs</nav>
<div class="job-description">  Analyze   sales data with SQL and Tableau. </div>
<footer>Contact</footer></body></html>`)
	}))
	defer srv.Close()

	jd, err := NewPageFetcher(5*time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst - Acme\n\nAnalyze sales data with SQL and Tableau.", jd)
}

func TestPageFetcherFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>Remote Go role.</p></body></html>`)
	}))
	defer srv.Close()

	jd, err := NewPageFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Remote Go role.", jd)
}

func TestPageFetcherHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewPageFetcher(0).Fetch(context.Background(), srv.URL)
	assert.True(t, errx.IsCode(err, review.CodeJobFetchFailed))
}

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestRouter(t *testing.T) {
	indeed := &stubFetcher{err: errors.New("actor failed")}
	page := &stubFetcher{text: "from page"}
	r := NewRouter(indeed, page)

	jd, err := r.Fetch(context.Background(), "https://www.indeed.com/viewjob?jk=1")
	require.NoError(t, err)
	assert.Equal(t, "from page", jd)
	assert.Equal(t, 1, indeed.calls)

	_, err = r.Fetch(context.Background(), "https://careers.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, 1, indeed.calls)
	assert.Equal(t, 2, page.calls)

	_, err = NewRouter(nil, nil).Fetch(context.Background(), "https://careers.example.com/1")
	assert.True(t, errx.IsCode(err, review.CodeNoJobDescription))
}
