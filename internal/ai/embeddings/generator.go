package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultModel = openai.EmbeddingModelTextEmbedding3Small
	Dimension    = 1536
)

// EmbeddingsGenerator creates embeddings through the OpenAI API
type EmbeddingsGenerator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbeddingsGenerator creates a generator. Extra options are passed to the
// OpenAI client (base URL overrides in tests, for instance).
func NewEmbeddingsGenerator(apiKey string, model string, opts ...option.RequestOption) *EmbeddingsGenerator {
	client := openai.NewClient(
		append([]option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}, opts...)...,
	)

	m := openai.EmbeddingModel(model)
	if model == "" {
		m = DefaultModel
	}

	return &EmbeddingsGenerator{
		client: &client,
		model:  m,
	}
}

// Embed creates an embedding vector for text. Blank text fails before any
// provider call.
func (g *EmbeddingsGenerator) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyInput()
	}

	vectors, err := g.create(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one call. Blank entries are rejected rather than
// skipped so results stay aligned with the input.
func (g *EmbeddingsGenerator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ai.ErrEmptyInput().WithDetail("reason", "no texts provided")
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, ai.ErrEmptyInput().WithDetail("index", i)
		}
	}

	return g.create(ctx, texts)
}

func (g *EmbeddingsGenerator) create(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: g.model,
	})
	if err != nil {
		return nil, ai.ErrEmbeddingProvider(err).WithDetail("model", string(g.model))
	}

	if len(resp.Data) != len(texts) {
		return nil, ai.ErrEmbeddingProvider(
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data)),
		)
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || int(data.Index) >= len(texts) {
			return nil, ai.ErrEmbeddingProvider(fmt.Errorf("embedding index %d out of range", data.Index))
		}
		embeddings[data.Index] = toFloat32(data.Embedding)
	}

	return embeddings, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
