// Package openai provides an AI provider adapter using the OpenAI
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/daybook-labs/daybook/internal/adapters/driven/llm"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/logger"
)

// Ensure Provider implements the interfaces.
var (
	_ driven.Provider    = (*Provider)(nil)
	_ driven.ModelLister = (*Provider)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the OpenAI provider.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the per-attempt request timeout (default: 30s).
	Timeout time.Duration

	// Retries is the attempt budget per request (default: 3).
	Retries int
}

// Provider processes journal content using the OpenAI API.
type Provider struct {
	client  *llm.Client
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model    string              `json:"model"`
	Messages []chatCompletionMsg `json:"messages"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// modelsResponse is the OpenAI /models response format.
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// New creates an OpenAI provider.
func New(cfg Config, log *logger.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// One request per second keeps well inside the API's rate limits
	// for batch runs.
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	return &Provider{
		client:  llm.NewClient("openai", cfg.Timeout, cfg.Retries, limiter, log),
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "openai"
}

// Process submits the content for rewriting and returns the rewritten
// text with its sentiment classification.
func (p *Provider) Process(ctx context.Context, content string, opts driven.ProcessOptions) (*driven.ProcessResult, error) {
	prompt := llm.BuildPrompt(opts.PromptTemplate, content, opts.Language)

	jsonBody, err := json.Marshal(chatCompletionRequest{
		Model:    p.model,
		Messages: []chatCompletionMsg{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, err := p.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			p.baseURL+"/chat/completions",
			bytes.NewReader(jsonBody),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no completion choices returned")
	}

	raw := chatResp.Choices[0].Message.Content
	if err := llm.ValidateCompletion("openai", raw); err != nil {
		return nil, err
	}

	text, sentiment := llm.ParseResponse(raw)
	return &driven.ProcessResult{Content: text, Sentiment: sentiment}, nil
}

// TestConnection validates the API key by checking the /models endpoint.
// This is a lightweight check that does not run inference.
func (p *Provider) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("openai: connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai: %s", llm.Classify(resp.StatusCode, body, nil))
	}
	return nil
}

// ListModels returns the model identifiers the API key can use.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	body, err := p.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var modelsResp modelsResponse
	if err := json.Unmarshal(body, &modelsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

// ValidateConfig returns human-readable configuration problems.
func (p *Provider) ValidateConfig() []string {
	var problems []string
	if p.apiKey == "" {
		problems = append(problems, "OpenAI API key is required")
	} else if !strings.HasPrefix(p.apiKey, "sk-") {
		problems = append(problems, `OpenAI API key should start with "sk-"`)
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
