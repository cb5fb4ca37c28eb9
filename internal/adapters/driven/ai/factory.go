// Package ai provides factory functions for creating AI provider
// adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook-labs/daybook/internal/adapters/driven/llm/gemini"
	"github.com/daybook-labs/daybook/internal/adapters/driven/llm/ollama"
	"github.com/daybook-labs/daybook/internal/adapters/driven/llm/openai"
	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/logger"
)

// connectTimeout is the maximum time to wait for connectivity validation.
const connectTimeout = 5 * time.Second

// CreateProvider creates the AI provider the settings select. The
// settings must already pass their own validation; configuration
// problems the adapter detects are still reported via ValidateConfig.
func CreateProvider(settings domain.ProviderSettings, log *logger.Logger) (driven.Provider, error) {
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.Model,
		}, log), nil

	case domain.AIProviderGemini:
		return gemini.New(gemini.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.Model,
		}, log), nil

	case domain.AIProviderOllama:
		return ollama.New(ollama.Config{
			Endpoint: settings.Endpoint,
			Model:    settings.Model,
		}, log), nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateAndValidateProvider creates a provider, checks its
// configuration and verifies connectivity. Intended for the moment a
// user saves settings; batch runs create providers without the
// connectivity round-trip.
func CreateAndValidateProvider(settings domain.ProviderSettings, log *logger.Logger) (driven.Provider, error) {
	provider, err := CreateProvider(settings, log)
	if err != nil {
		return nil, err
	}

	if problems := provider.ValidateConfig(); len(problems) > 0 {
		provider.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderNotConfigured, problems[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := provider.TestConnection(ctx); err != nil {
		provider.Close()
		return nil, err
	}
	return provider, nil
}

// ListModels enumerates the models a provider offers. Providers
// without a model-listing endpoint report that as an error.
func ListModels(ctx context.Context, provider driven.Provider) ([]string, error) {
	lister, ok := provider.(driven.ModelLister)
	if !ok {
		return nil, fmt.Errorf("%s does not support model listing", provider.Name())
	}
	return lister.ListModels(ctx)
}
