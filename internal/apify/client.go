// Package apify runs Apify actors synchronously and decodes their dataset items.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.apify.com/v2"

// Client calls the run-sync-get-dataset-items endpoint
type Client struct {
	baseURL    string
	token      string
	memoryMB   int
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithMemory sets the actor memory limit in megabytes
func WithMemory(mb int) Option {
	return func(c *Client) { c.memoryMB = mb }
}

func NewClient(token string, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		memoryMB:   512,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Actor  string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apify actor %s: status %d: %s", e.Actor, e.Status, e.Body)
}

// RunSync runs actor with input and decodes the resulting dataset items
// into out, which should point to a slice. Actor names may use either
// "user/name" or "user~name".
func (c *Client) RunSync(ctx context.Context, actor string, input any, out any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?%s",
		c.baseURL,
		url.PathEscape(strings.ReplaceAll(actor, "/", "~")),
		url.Values{
			"token":  {c.token},
			"memory": {fmt.Sprint(c.memoryMB)},
		}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("run actor %s: %w", actor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Actor: actor, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode dataset items of %s: %w", actor, err)
	}
	return nil
}
