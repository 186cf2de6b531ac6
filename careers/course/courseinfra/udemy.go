package courseinfra

import (
	"context"
	"net/url"
	"strings"

	"github.com/Abraxas-365/careerlens/careers/course"
	"github.com/Abraxas-365/careerlens/internal/apify"
)

const DefaultUdemyActor = "natanielsantos~udemy-courses-scraper"

// ActorRunner is the subset of the Apify client the scraper needs
type ActorRunner interface {
	RunSync(ctx context.Context, actor string, input any, out any) error
}

var _ ActorRunner = (*apify.Client)(nil)

// UdemyScraper searches Udemy through an Apify actor
type UdemyScraper struct {
	runner ActorRunner
	actor  string
}

func NewUdemyScraper(runner ActorRunner, actor string) *UdemyScraper {
	if actor == "" {
		actor = DefaultUdemyActor
	}
	return &UdemyScraper{runner: runner, actor: actor}
}

type udemyItem struct {
	Title       string `json:"title"`
	ContentInfo string `json:"content_info"`
	URL         string `json:"url"`
}

type startURL struct {
	URL string `json:"url"`
}

type udemyInput struct {
	StartURLs      []startURL     `json:"start_urls"`
	MaxItemsPerURL int            `json:"max_items_per_url"`
	ProxySettings  map[string]any `json:"proxySettings"`
}

func (s *UdemyScraper) Search(ctx context.Context, skill string) ([]course.Course, error) {
	input := udemyInput{
		StartURLs:      []startURL{{URL: "https://www.udemy.com/courses/search/?q=" + url.QueryEscape(skill)}},
		MaxItemsPerURL: 1,
		ProxySettings:  map[string]any{"useApifyProxy": true},
	}

	var items []udemyItem
	if err := s.runner.RunSync(ctx, s.actor, input, &items); err != nil {
		return nil, course.ErrScrapeFailed(err).WithDetail("skill", skill)
	}

	courses := make([]course.Course, 0, len(items))
	for _, it := range items {
		courses = append(courses, toCourse(it))
	}
	return courses, nil
}

func toCourse(it udemyItem) course.Course {
	return course.Course{
		Name:     orDefault(it.Title, "Untitled"),
		Provider: "Udemy",
		Duration: orDefault(it.ContentInfo, "N/A"),
		URL:      orDefault(it.URL, "#"),
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
