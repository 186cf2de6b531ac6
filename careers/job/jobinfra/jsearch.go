package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/job"
)

const (
	DefaultJSearchURL  = "https://jsearch.p.rapidapi.com"
	DefaultJSearchHost = "jsearch.p.rapidapi.com"
	searchPages        = "3"
	searchCountry      = "us"
)

// JSearchClient queries the JSearch API on RapidAPI
type JSearchClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	host       string
}

type Option func(*JSearchClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *JSearchClient) { c.httpClient = h }
}

func NewJSearchClient(apiKey, host, baseURL string, opts ...Option) *JSearchClient {
	if host == "" {
		host = DefaultJSearchHost
	}
	if baseURL == "" {
		baseURL = DefaultJSearchURL
	}
	c := &JSearchClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		host:       host,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ job.Board = (*JSearchClient)(nil)

type searchResponse struct {
	Status string         `json:"status"`
	Data   []jsearchEntry `json:"data"`
}

type jsearchEntry struct {
	JobID             string   `json:"job_id"`
	JobTitle          string   `json:"job_title"`
	EmployerName      string   `json:"employer_name"`
	EmployerLogo      *string  `json:"employer_logo"`
	JobCity           string   `json:"job_city"`
	JobState          string   `json:"job_state"`
	JobEmploymentType string   `json:"job_employment_type"`
	JobIsRemote       bool     `json:"job_is_remote"`
	JobPostedAt       string   `json:"job_posted_at_datetime_utc"`
	JobDescription    string   `json:"job_description"`
	JobMinSalary      *float64 `json:"job_min_salary"`
	JobMaxSalary      *float64 `json:"job_max_salary"`
	JobSalaryCurrency string   `json:"job_salary_currency"`
	JobApplyLink      string   `json:"job_apply_link"`
}

func (c *JSearchClient) Search(ctx context.Context, q job.Query) ([]job.Job, error) {
	params := url.Values{
		"query":     {q.Text()},
		"page":      {"1"},
		"num_pages": {searchPages},
		"country":   {searchCountry},
	}
	if q.Type != "" {
		params.Set("employment_types", q.Type)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, job.ErrProvider(err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, job.ErrProvider(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, job.ErrProvider(fmt.Errorf("jsearch status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))).
			WithDetail("status", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, job.ErrProvider(fmt.Errorf("decode jsearch response: %w", err))
	}

	jobs := make([]job.Job, 0, len(out.Data))
	for _, e := range out.Data {
		if j, ok := e.toJob(); ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// toJob maps one entry, dropping postings without a title, employer or
// apply link
func (e jsearchEntry) toJob() (job.Job, bool) {
	title := strings.TrimSpace(e.JobTitle)
	company := strings.TrimSpace(e.EmployerName)
	if title == "" || company == "" || e.JobApplyLink == "" {
		return job.Job{}, false
	}

	j := job.Job{
		ID:          e.JobID,
		Title:       title,
		Company:     company,
		Location:    joinNonEmpty(", ", e.JobCity, e.JobState),
		Type:        e.JobEmploymentType,
		Remote:      e.JobIsRemote,
		Description: e.JobDescription,
		Link:        e.JobApplyLink,
	}
	if j.Type == "" {
		j.Type = "Unknown"
	}
	if e.EmployerLogo != nil && *e.EmployerLogo != "" {
		j.LogoURL = e.EmployerLogo
	}
	if e.JobPostedAt != "" {
		if t, err := time.Parse(time.RFC3339, e.JobPostedAt); err == nil {
			j.Posted = &t
		}
	}
	if e.JobMinSalary != nil && e.JobMaxSalary != nil && *e.JobMinSalary > 0 && *e.JobMaxSalary > 0 {
		currency := e.JobSalaryCurrency
		if currency == "" {
			currency = "USD"
		}
		j.Salary = &job.Salary{Min: *e.JobMinSalary, Max: *e.JobMaxSalary, Currency: currency}
	}
	return j, true
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
