// Package gemini provides an AI provider adapter using the Google
// Gemini generateContent API.
package gemini

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

// Ensure Provider implements the interface. Gemini has no stable
// model-listing surface for API-key auth, so it is not a ModelLister.
var _ driven.Provider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Gemini provider.
type Config struct {
	// APIKey is the Google AI Studio API key (required).
	APIKey string

	// BaseURL is the API base URL
	// (default: https://generativelanguage.googleapis.com/v1beta).
	BaseURL string

	// Model is the model to use (default: gemini-1.5-flash).
	Model string

	// Timeout is the per-attempt request timeout (default: 30s).
	Timeout time.Duration

	// Retries is the attempt budget per request (default: 3).
	Retries int
}

// Provider processes journal content using the Gemini API.
type Provider struct {
	client  *llm.Client
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateContentRequest is the Gemini :generateContent request format.
type generateContentRequest struct {
	Contents       []content       `json:"contents"`
	SafetySettings []safetySetting `json:"safetySettings,omitempty"`
}

// content is one conversation turn.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// part is one content fragment.
type part struct {
	Text string `json:"text"`
}

// safetySetting relaxes a harm-category threshold. Journal entries
// about a bad day trip the default filters surprisingly often.
type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// generateContentResponse is the Gemini :generateContent response format.
type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// defaultSafetySettings allows everything but high-probability harm.
var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
}

// New creates a Gemini provider.
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

	limiter := rate.NewLimiter(rate.Limit(1), 1)

	return &Provider{
		client:  llm.NewClient("gemini", cfg.Timeout, cfg.Retries, limiter, log),
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "gemini"
}

// generateURL builds the model endpoint URL. Gemini authenticates with
// a key query parameter instead of a header.
func (p *Provider) generateURL() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
}

// Process submits the content for rewriting and returns the rewritten
// text with its sentiment classification.
func (p *Provider) Process(ctx context.Context, text string, opts driven.ProcessOptions) (*driven.ProcessResult, error) {
	prompt := llm.BuildPrompt(opts.PromptTemplate, text, opts.Language)

	jsonBody, err := json.Marshal(generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		SafetySettings: defaultSafetySettings,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, err := p.client.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.generateURL(), bytes.NewReader(jsonBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if genResp.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}

	candidate := genResp.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return nil, fmt.Errorf("gemini: response blocked by safety filter")
	}

	var raw strings.Builder
	for _, pt := range candidate.Content.Parts {
		raw.WriteString(pt.Text)
	}
	if err := llm.ValidateCompletion("gemini", raw.String()); err != nil {
		return nil, err
	}

	out, sentiment := llm.ParseResponse(raw.String())
	return &driven.ProcessResult{Content: out, Sentiment: sentiment}, nil
}

// TestConnection validates the API key by listing the model catalogue.
// This is a lightweight check that does not run inference.
func (p *Provider) TestConnection(ctx context.Context) error {
	url := fmt.Sprintf("%s/models?key=%s", p.baseURL, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: create request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gemini: %s", llm.Classify(resp.StatusCode, body, nil))
	}
	return nil
}

// ValidateConfig returns human-readable configuration problems.
func (p *Provider) ValidateConfig() []string {
	var problems []string
	if p.apiKey == "" {
		problems = append(problems, "Gemini API key is required")
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
