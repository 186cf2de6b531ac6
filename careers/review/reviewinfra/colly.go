package reviewinfra

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/internal/textract"
	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// descriptionSelectors are tried before falling back to the whole body
var descriptionSelectors = []string{
	"#jobDescriptionText",
	"[data-automation='jobAdDetails']",
	".job-description",
	".description__text",
	"article",
}

// PageFetcher reads a job posting straight from its HTML page
type PageFetcher struct {
	timeout time.Duration
}

func NewPageFetcher(timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PageFetcher{timeout: timeout}
}

func (f *PageFetcher) Fetch(ctx context.Context, jobURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(f.timeout)

	var (
		title  string
		body   string
		found  = make(map[string]string)
		reqErr error
	)

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if t := strings.TrimSpace(e.Text); t != "" && title == "" {
			title = t
		}
	})
	for _, sel := range descriptionSelectors {
		sel := sel
		c.OnHTML(sel, func(e *colly.HTMLElement) {
			if _, ok := found[sel]; !ok {
				found[sel] = strings.TrimSpace(e.Text)
			}
		})
	}
	c.OnHTML("body", func(e *colly.HTMLElement) {
		body = strings.TrimSpace(e.Text)
	})
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(jobURL); err != nil {
		return "", review.ErrJobFetchFailed(err).WithDetail("url", jobURL)
	}
	c.Wait()
	if reqErr != nil {
		return "", review.ErrJobFetchFailed(reqErr).WithDetail("url", jobURL)
	}

	description := body
	for _, sel := range descriptionSelectors {
		if d := found[sel]; d != "" {
			description = d
			break
		}
	}
	description = textract.Clean(description)
	if description == "" {
		return "", review.ErrNoJobDescription().WithDetail("url", jobURL)
	}
	if title != "" && !strings.HasPrefix(description, title) {
		description = title + "\n\n" + description
	}
	return description, nil
}

// Router sends Indeed links to indeed and everything else to page. When
// indeed fails the page fetcher gets a try.
type Router struct {
	indeed review.JobDescriptionFetcher
	page   review.JobDescriptionFetcher
}

func NewRouter(indeed, page review.JobDescriptionFetcher) *Router {
	return &Router{indeed: indeed, page: page}
}

func (r *Router) Fetch(ctx context.Context, jobURL string) (string, error) {
	if r.indeed != nil && review.IsIndeed(jobURL) {
		jd, err := r.indeed.Fetch(ctx, jobURL)
		if err == nil || r.page == nil {
			return jd, err
		}
	}
	if r.page == nil {
		return "", review.ErrNoJobDescription().WithDetail("url", jobURL)
	}
	return r.page.Fetch(ctx, jobURL)
}
