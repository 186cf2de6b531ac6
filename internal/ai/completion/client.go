package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const DefaultModel = "gpt-4o"

// Client sends single-turn chat completions to OpenAI
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a completion client. Retries are disabled: a failed call
// surfaces to the caller as a provider error.
func NewClient(apiKey string, model string, opts ...option.RequestOption) *Client {
	client := openai.NewClient(
		append([]option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}, opts...)...,
	)
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: &client, model: model}
}

// Complete returns the trimmed text of the first choice
func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ai.ErrEmptyInput().WithDetail("field", "prompt")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       c.model,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", ai.ErrCompletionProvider(err).WithDetail("model", c.model)
	}

	if len(completion.Choices) == 0 {
		return "", ai.ErrCompletionProvider(errors.New("no choices returned")).WithDetail("model", c.model)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
