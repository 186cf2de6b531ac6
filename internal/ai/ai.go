// Package ai declares the model-provider ports used across the service and
// the errors they surface.
package ai

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/careerlens/pkg/errx"
)

// Embedder turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder embeds many texts in one provider call
type BatchEmbedder interface {
	Embedder
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionRequest is a single-turn chat completion
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// JSONObject asks the provider to constrain output to a JSON object
	JSONObject bool
}

// Completer returns the text of a single completion
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

var ErrRegistry = errx.NewRegistry("AI")

var (
	CodeEmptyInput           = ErrRegistry.Register("EMPTY_INPUT", errx.TypeValidation, http.StatusBadRequest, "Input text is empty")
	CodeEmbeddingProvider    = ErrRegistry.Register("EMBEDDING_PROVIDER", errx.TypeExternal, http.StatusBadGateway, "Embedding provider failed")
	CodeCompletionProvider   = ErrRegistry.Register("COMPLETION_PROVIDER", errx.TypeExternal, http.StatusBadGateway, "Completion provider failed")
	CodeMalformedModelOutput = ErrRegistry.Register("MALFORMED_MODEL_OUTPUT", errx.TypeExternal, http.StatusBadGateway, "Model output could not be parsed")
)

func ErrEmptyInput() *errx.Error {
	return ErrRegistry.New(CodeEmptyInput)
}

func ErrEmbeddingProvider(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeEmbeddingProvider, cause)
}

func ErrCompletionProvider(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeCompletionProvider, cause)
}

func ErrMalformedModelOutput(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeMalformedModelOutput, cause)
}
