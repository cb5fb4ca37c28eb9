// Package llm provides the request layer shared by all AI provider
// adapters: prompt assembly, retry with exponential backoff, error
// classification and response post-processing. The concrete backends
// (openai, gemini, ollama) differ only in request/response shape and
// authentication.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/logger"
)

// Default request-layer values.
const (
	// DefaultRetries is the total attempt budget per request.
	DefaultRetries = 3

	// DefaultTimeout is the wall-clock limit per attempt. Local-model
	// backends override this with something larger.
	DefaultTimeout = 30 * time.Second

	// backoffBase is the wait after the first failed attempt.
	backoffBase = time.Second

	// backoffCap bounds the exponential backoff.
	backoffCap = 10 * time.Second
)

// Client is the shared HTTP layer. A nil limiter disables pacing.
type Client struct {
	provider string
	http     *http.Client
	retries  int
	limiter  *rate.Limiter
	log      *logger.Logger
	backoff  func(attempt int) time.Duration
}

// NewClient creates a request client for one provider.
func NewClient(provider string, timeout time.Duration, retries int, limiter *rate.Limiter, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries <= 0 {
		retries = DefaultRetries
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		provider: provider,
		http:     &http.Client{Timeout: timeout},
		retries:  retries,
		limiter:  limiter,
		log:      log,
		backoff:  Backoff,
	}
}

// Backoff returns the wait before retrying after the given 1-based
// attempt: 1s, 2s, 4s... capped at 10s.
func Backoff(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffCap {
		return backoffCap
	}
	return d
}

// Do submits a request with the retry policy: on a non-2xx status or a
// network failure it waits Backoff(attempt) and retries, up to the
// attempt budget. The final attempt's failure is surfaced as the
// terminal error, worded by Classify. The request is rebuilt for every
// attempt because bodies are single-use.
func (c *Client) Do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		body, status, err := c.send(req)
		if err == nil && status >= 200 && status < 300 {
			return body, nil
		}

		lastErr = c.classified(status, body, err)
		c.log.Debugf("%s request failed (attempt %d/%d): %v", c.provider, attempt, c.retries, lastErr)

		if attempt == c.retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}
	return nil, lastErr
}

// send executes one attempt and reads the full response body.
func (c *Client) send(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// classified wraps one attempt's failure with a user-facing message.
// The classification selects wording only; it never changes retry
// behaviour.
func (c *Client) classified(status int, body []byte, err error) error {
	return fmt.Errorf("%s: %s", c.provider, Classify(status, body, err))
}

// Classify maps a failed attempt to a user-facing message. The caller
// prefixes the provider name, so the message never repeats it.
func Classify(status int, body []byte, err error) string {
	if err != nil {
		if isTimeout(err) {
			return "request timed out"
		}
		return fmt.Sprintf("request failed: %v", err)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "authentication failed, check API key"
	case status == http.StatusTooManyRequests:
		return "rate limit exceeded"
	case status >= 500:
		return "server error, try again later"
	default:
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return fmt.Sprintf("unexpected status %d: %s", status, detail)
	}
}

// isTimeout reports whether an attempt failed on the wall-clock limit.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}

// BuildPrompt substitutes content into the template's {content}
// placeholder and appends the output-language directive: a concrete
// code asks for that language, auto asks the model to preserve the
// input's language.
func BuildPrompt(template, content, language string) string {
	prompt := strings.ReplaceAll(template, "{content}", content)

	if language == "" || language == domain.LanguageAuto {
		return prompt + "\n\nWrite the output in the same language as the input. Do not translate."
	}
	return prompt + fmt.Sprintf("\n\nWrite the output in %q.", language)
}

// sentimentPrefix marks a trailing sentiment tag, compared
// case-insensitively.
const sentimentPrefix = "sentiment:"

// ParseResponse post-processes a raw completion: it scans lines from
// last to first for a "SENTIMENT: <label>" tag with a canonical label,
// stopping at the first (bottommost) match. The content is everything
// strictly before that line, trimmed. Without a match the sentiment
// defaults to Neutral and the content is the full trimmed response.
func ParseResponse(raw string) (string, domain.Sentiment) {
	lines := strings.Split(raw, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(strings.ToLower(line), sentimentPrefix) {
			continue
		}
		label := line[len(sentimentPrefix):]
		if s, ok := domain.ParseSentiment(label); ok {
			content := strings.TrimSpace(strings.Join(lines[:i], "\n"))
			return content, s
		}
	}
	return strings.TrimSpace(raw), domain.SentimentNeutral
}

// ValidateCompletion rejects empty or whitespace-only completions.
func ValidateCompletion(provider, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: %w", provider, domain.ErrEmptyResponse)
	}
	return nil
}
