package reviewinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/internal/apify"
)

const DefaultIndeedActor = "misceres~indeed-scraper"

// ActorRunner is the subset of the Apify client the fetcher needs
type ActorRunner interface {
	RunSync(ctx context.Context, actor string, input any, out any) error
}

var _ ActorRunner = (*apify.Client)(nil)

// IndeedFetcher reads Indeed postings through an Apify actor
type IndeedFetcher struct {
	runner ActorRunner
	actor  string
}

func NewIndeedFetcher(runner ActorRunner, actor string) *IndeedFetcher {
	if actor == "" {
		actor = DefaultIndeedActor
	}
	return &IndeedFetcher{runner: runner, actor: actor}
}

type indeedInput struct {
	StartURLs          []startURL         `json:"startUrls"`
	ProxyConfiguration proxyConfiguration `json:"proxyConfiguration"`
}

type startURL struct {
	URL string `json:"url"`
}

type proxyConfiguration struct {
	UseApifyProxy bool `json:"useApifyProxy"`
}

type indeedItem struct {
	Description string `json:"description"`
}

func (f *IndeedFetcher) Fetch(ctx context.Context, jobURL string) (string, error) {
	input := indeedInput{
		StartURLs:          []startURL{{URL: jobURL}},
		ProxyConfiguration: proxyConfiguration{UseApifyProxy: true},
	}

	var items []indeedItem
	if err := f.runner.RunSync(ctx, f.actor, input, &items); err != nil {
		return "", review.ErrJobFetchFailed(err).WithDetail("url", jobURL)
	}
	for _, it := range items {
		if d := strings.TrimSpace(it.Description); d != "" {
			return d, nil
		}
	}
	return "", review.ErrNoJobDescription().WithDetail("url", jobURL)
}
