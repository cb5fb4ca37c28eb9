package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

func newTestProvider(url string) *Provider {
	return New(Config{APIKey: "sk-test", BaseURL: url, Model: "gpt-4o-mini", Retries: 1}, nil)
}

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestProcess(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write(completionBody(t, "A calm day by the sea.\n\nSENTIMENT: Happy"))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Process(context.Background(), "went to the sea", driven.ProcessOptions{
		PromptTemplate: "Rewrite:\n{content}",
		Language:       domain.LanguageAuto,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Rewrite:\nwent to the sea")

	assert.Equal(t, "A calm day by the sea.", result.Content)
	assert.Equal(t, domain.SentimentHappy, result.Sentiment)
}

func TestProcessNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Process(context.Background(), "x", driven.ProcessOptions{PromptTemplate: "{content}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}

func TestProcessEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, "   \n"))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Process(context.Background(), "x", driven.ProcessOptions{PromptTemplate: "{content}"})
	require.ErrorIs(t, err, domain.ErrEmptyResponse)
}

func TestProcessAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Process(context.Background(), "x", driven.ProcessOptions{PromptTemplate: "{content}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestTestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestProvider(srv.URL).TestConnection(context.Background()))
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o-mini"},{"id":"gpt-4o"}]}`))
	}))
	defer srv.Close()

	models, err := newTestProvider(srv.URL).ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o"}, models)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		problems int
	}{
		{name: "valid", cfg: Config{APIKey: "sk-abc", Model: "gpt-4o-mini"}, problems: 0},
		{name: "missing key", cfg: Config{APIKey: "", Model: "gpt-4o-mini"}, problems: 1},
		{name: "malformed key", cfg: Config{APIKey: "abc", Model: "gpt-4o-mini"}, problems: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg, nil)
			assert.Len(t, p.ValidateConfig(), tt.problems)
		})
	}
}
