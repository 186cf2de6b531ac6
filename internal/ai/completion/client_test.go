package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func newStub(t *testing.T, reply string, seen *chatRequest) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   seen.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return NewClient("test-key", "", option.WithBaseURL(srv.URL))
}

func TestComplete(t *testing.T) {
	var seen chatRequest
	c := newStub(t, "  Tell me about yourself.\n", &seen)

	out, err := c.Complete(context.Background(), ai.CompletionRequest{
		System:      "You are simulating a job interview.",
		Prompt:      "Ask the first question for a Data Analyst.",
		Temperature: 0.7,
		MaxTokens:   200,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tell me about yourself.", out)

	assert.Equal(t, DefaultModel, seen.Model)
	require.NotNil(t, seen.Temperature)
	assert.Equal(t, 0.7, *seen.Temperature)
	require.NotNil(t, seen.MaxTokens)
	assert.Equal(t, 200, *seen.MaxTokens)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Nil(t, seen.ResponseFormat)
}

func TestCompleteJSONObject(t *testing.T) {
	var seen chatRequest
	c := newStub(t, `{"ok":true}`, &seen)

	_, err := c.Complete(context.Background(), ai.CompletionRequest{Prompt: "score this", JSONObject: true})
	require.NoError(t, err)
	require.NotNil(t, seen.ResponseFormat)
	assert.Equal(t, "json_object", seen.ResponseFormat.Type)
	assert.Len(t, seen.Messages, 1)
}

func TestCompleteProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient("k", "gpt-4o-mini", option.WithBaseURL(srv.URL))

	_, err := c.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ai.CodeCompletionProvider))
}

func TestCompleteEmptyPrompt(t *testing.T) {
	c := NewClient("k", "")
	_, err := c.Complete(context.Background(), ai.CompletionRequest{Prompt: " "})
	assert.True(t, errx.IsCode(err, ai.CodeEmptyInput))
}
