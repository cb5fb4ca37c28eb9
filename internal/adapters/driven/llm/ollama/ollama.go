// Package ollama provides an AI provider adapter using a local Ollama
// server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-labs/daybook/internal/adapters/driven/llm"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/logger"
)

// Ensure Provider implements the interfaces.
var (
	_ driven.Provider    = (*Provider)(nil)
	_ driven.ModelLister = (*Provider)(nil)
)

// Default configuration values. Local models are slow on modest
// hardware, so the timeout is far larger than the cloud backends'.
const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "llama3.2"
	DefaultTimeout  = 120 * time.Second
)

// Config holds configuration for the Ollama provider.
type Config struct {
	// Endpoint is the Ollama server URL (default: http://localhost:11434).
	Endpoint string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the per-attempt request timeout (default: 120s).
	Timeout time.Duration

	// Retries is the attempt budget per request (default: 3).
	Retries int
}

// Provider processes journal content using a local Ollama server.
type Provider struct {
	client   *llm.Client
	http     *http.Client
	endpoint string
	model    string
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// tagsResponse is the Ollama /api/tags response format.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// New creates an Ollama provider. No rate limiter: the server is local
// and serves one request at a time anyway.
func New(cfg Config, log *logger.Logger) *Provider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		client:   llm.NewClient("ollama", cfg.Timeout, cfg.Retries, nil, log),
		http:     &http.Client{Timeout: cfg.Timeout},
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		model:    cfg.Model,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "ollama"
}

// Process submits the content for rewriting and returns the rewritten
// text with its sentiment classification.
func (p *Provider) Process(ctx context.Context, content string, opts driven.ProcessOptions) (*driven.ProcessResult, error) {
	prompt := llm.BuildPrompt(opts.PromptTemplate, content, opts.Language)

	jsonBody, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, err := p.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			p.endpoint+"/api/generate",
			bytes.NewReader(jsonBody),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := llm.ValidateCompletion("ollama", genResp.Response); err != nil {
		return nil, err
	}

	text, sentiment := llm.ParseResponse(genResp.Response)
	return &driven.ProcessResult{Content: text, Sentiment: sentiment}, nil
}

// TestConnection validates the server is reachable by checking the
// /api/tags endpoint. This does not run inference.
func (p *Provider) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: create request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: connection failed, is the server running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama: %s", llm.Classify(resp.StatusCode, body, nil))
	}
	return nil
}

// ListModels returns the models pulled into the local server.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	body, err := p.client.Do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/tags", http.NoBody)
	})
	if err != nil {
		return nil, err
	}

	var tagsResp tagsResponse
	if err := json.Unmarshal(body, &tagsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(tagsResp.Models))
	for _, m := range tagsResp.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

// ValidateConfig returns human-readable configuration problems.
func (p *Provider) ValidateConfig() []string {
	var problems []string
	if p.endpoint == "" {
		problems = append(problems, "Ollama endpoint is required")
	} else if !strings.HasPrefix(p.endpoint, "http://") && !strings.HasPrefix(p.endpoint, "https://") {
		problems = append(problems, "Ollama endpoint must be an http(s) URL")
	}
	if p.model == "" {
		problems = append(problems, "model name is required")
	}
	return problems
}

// Close releases resources.
func (p *Provider) Close() error {
	return nil
}
