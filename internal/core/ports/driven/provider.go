package driven

import (
	"context"

	"github.com/daybook-labs/daybook/internal/core/domain"
)

// Provider is a pluggable text-generation backend. Implementations wrap
// one HTTP API (OpenAI, Gemini, Ollama) and share the request/retry and
// response post-processing layer.
type Provider interface {
	// Process substitutes content into the prompt template, submits one
	// generation request (with retries) and returns the rewritten text
	// with its sentiment classification.
	Process(ctx context.Context, content string, opts ProcessOptions) (*ProcessResult, error)

	// TestConnection verifies the backend is reachable with the
	// configured credentials, without running generation.
	TestConnection(ctx context.Context) error

	// ValidateConfig returns human-readable configuration problems.
	// An empty list means the provider is ready to use.
	ValidateConfig() []string

	// Name returns the provider identifier used in error messages.
	Name() string

	// Close releases resources.
	Close() error
}

// ModelLister is an optional capability: providers that can enumerate
// their available models implement it. Detected by type assertion;
// backends without a model-listing endpoint simply do not implement it.
type ModelLister interface {
	// ListModels returns the model names the backend offers.
	ListModels(ctx context.Context) ([]string, error)
}

// ProcessOptions configures one Process call.
type ProcessOptions struct {
	// PromptTemplate is the rewrite prompt containing exactly one
	// {content} placeholder.
	PromptTemplate string

	// Language is an output language code, or domain.LanguageAuto to
	// instruct the backend to preserve the input's language.
	Language string
}

// ProcessResult is the outcome of a successful generation.
type ProcessResult struct {
	// Content is the rewritten text with the sentiment tag removed.
	Content string

	// Sentiment is the parsed classification, SentimentNeutral when the
	// backend emitted no usable tag.
	Sentiment domain.Sentiment
}
