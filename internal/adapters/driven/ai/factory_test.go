package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.ProviderSettings
		wantName string
		wantErr  error
	}{
		{
			name:     "openai",
			settings: domain.ProviderSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk-x", Model: "gpt-4o-mini"},
			wantName: "openai",
		},
		{
			name:     "gemini",
			settings: domain.ProviderSettings{Provider: domain.AIProviderGemini, APIKey: "k", Model: "gemini-1.5-flash"},
			wantName: "gemini",
		},
		{
			name:     "ollama",
			settings: domain.ProviderSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			wantName: "ollama",
		},
		{
			name:     "unknown provider",
			settings: domain.ProviderSettings{Provider: "claude"},
			wantErr:  domain.ErrUnsupportedProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := CreateProvider(tt.settings, nil)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer provider.Close()
			assert.Equal(t, tt.wantName, provider.Name())
		})
	}
}

// stubProvider is a test double with an optional model-listing
// capability.
type stubProvider struct {
	name   string
	models []string
	calls  int
	err    error
}

func (s *stubProvider) Process(context.Context, string, driven.ProcessOptions) (*driven.ProcessResult, error) {
	return nil, errors.New("not implemented")
}
func (s *stubProvider) TestConnection(context.Context) error { return nil }
func (s *stubProvider) ValidateConfig() []string             { return nil }
func (s *stubProvider) Name() string                         { return s.name }
func (s *stubProvider) Close() error                         { return nil }

func (s *stubProvider) ListModels(context.Context) ([]string, error) {
	s.calls++
	return s.models, s.err
}

// bareProvider has no model-listing capability.
type bareProvider struct{ stubProvider }

func (b *bareProvider) ListModels() {} // different arity, does not satisfy ModelLister

func TestListModelsCapability(t *testing.T) {
	t.Run("supported", func(t *testing.T) {
		stub := &stubProvider{name: "openai", models: []string{"a", "b"}}
		models, err := ListModels(context.Background(), stub)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, models)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := ListModels(context.Background(), &bareProvider{stubProvider{name: "gemini"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not support model listing")
	})
}

func TestModelCache(t *testing.T) {
	now := time.Now()
	cache := NewModelCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	stub := &stubProvider{name: "ollama", models: []string{"llama3.2"}}

	models, err := cache.Models(context.Background(), domain.AIProviderOllama, stub)
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2"}, models)
	assert.Equal(t, 1, stub.calls)

	// Within the TTL the cached list is served.
	now = now.Add(4 * time.Minute)
	_, err = cache.Models(context.Background(), domain.AIProviderOllama, stub)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)

	// Past the TTL the list is refetched.
	now = now.Add(2 * time.Minute)
	_, err = cache.Models(context.Background(), domain.AIProviderOllama, stub)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestModelCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewModelCache(0)
	stub := &stubProvider{name: "openai", err: errors.New("boom")}

	_, err := cache.Models(context.Background(), domain.AIProviderOpenAI, stub)
	require.Error(t, err)

	stub.err = nil
	stub.models = []string{"gpt-4o"}
	models, err := cache.Models(context.Background(), domain.AIProviderOpenAI, stub)
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o"}, models)
	assert.Equal(t, 2, stub.calls)
}

func TestModelCacheInvalidate(t *testing.T) {
	cache := NewModelCache(time.Hour)
	stub := &stubProvider{name: "ollama", models: []string{"llama3.2"}}

	_, err := cache.Models(context.Background(), domain.AIProviderOllama, stub)
	require.NoError(t, err)
	cache.Invalidate(domain.AIProviderOllama)

	_, err = cache.Models(context.Background(), domain.AIProviderOllama, stub)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}
