package services

import (
	"fmt"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySourceFolder     = "source.folder"
	keyDateFormat       = "source.date_format"
	keyDestFolder       = "destination.folder"
	keyFilenameTemplate = "destination.filename_template"
	keyProvider         = "ai.provider"
	keyLanguage         = "ai.language"
	keyFrequency        = "frequency"
)

// providerKeys returns the config keys for one provider's section,
// e.g. ai.openai.api_key.
func providerKeys(p domain.AIProvider) (apiKey, endpoint, model string) {
	prefix := "ai." + p.String() + "."
	return prefix + "api_key", prefix + "endpoint", prefix + "model"
}

// SettingsService maps the config store's flat keys to typed
// application settings with defaults. Per-provider sections are kept
// separately so switching providers does not lose credentials.
type SettingsService struct {
	configStore driven.ConfigStore
	promptStore driven.PromptStore
}

// NewSettingsService creates a settings service. promptStore may be
// nil; the embedded default prompt is used then.
func NewSettingsService(configStore driven.ConfigStore, promptStore driven.PromptStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		promptStore: promptStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(defaults.AI.Provider)

	settings := &domain.AppSettings{
		SourceFolder:      s.getString(keySourceFolder, defaults.SourceFolder),
		DateFormat:        s.getString(keyDateFormat, defaults.DateFormat),
		DestinationFolder: s.getString(keyDestFolder, defaults.DestinationFolder),
		FilenameTemplate:  s.getString(keyFilenameTemplate, defaults.FilenameTemplate),
		AI:                s.getProviderSettings(provider),
		Language:          s.getString(keyLanguage, defaults.Language),
		FrequencyMinutes:  s.getInt(keyFrequency, defaults.FrequencyMinutes),
		PromptTemplate:    s.getPromptTemplate(),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	pairs := []struct {
		key string
		val any
	}{
		{keySourceFolder, settings.SourceFolder},
		{keyDateFormat, settings.DateFormat},
		{keyDestFolder, settings.DestinationFolder},
		{keyFilenameTemplate, settings.FilenameTemplate},
		{keyProvider, settings.AI.Provider.String()},
		{keyLanguage, settings.Language},
		{keyFrequency, settings.FrequencyMinutes},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.val); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}

	return s.saveProviderSettings(settings.AI)
}

// SetProvider switches the active provider and stores its settings.
// Empty model falls back to the provider's default; endpoint stays
// empty for cloud providers unless overridden.
func (s *SettingsService) SetProvider(provider domain.AIProvider, model, apiKey, endpoint string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		// Keep a previously stored key when no new one is given.
		stored := s.getProviderSettings(provider)
		if stored.APIKey == "" {
			return fmt.Errorf("%w: API key required for %s", domain.ErrProviderNotConfigured, provider)
		}
		apiKey = stored.APIKey
	}

	if model == "" {
		model = defaultModels[provider]
	}

	if err := s.configStore.Set(keyProvider, provider.String()); err != nil {
		return fmt.Errorf("save provider: %w", err)
	}
	return s.saveProviderSettings(domain.ProviderSettings{
		Provider: provider,
		APIKey:   apiKey,
		Endpoint: endpoint,
		Model:    model,
	})
}

// defaultModels maps each provider to the model used when the user
// does not pick one.
var defaultModels = map[domain.AIProvider]string{
	domain.AIProviderOpenAI: "gpt-4o-mini",
	domain.AIProviderGemini: "gemini-1.5-flash",
	domain.AIProviderOllama: "llama3.2",
}

// Validate checks whether the current settings can drive a batch run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if problems := settings.Validate(); len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrProviderNotConfigured, problems[0])
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getProviderSettings reads one provider's stored section.
func (s *SettingsService) getProviderSettings(provider domain.AIProvider) domain.ProviderSettings {
	apiKeyKey, endpointKey, modelKey := providerKeys(provider)

	return domain.ProviderSettings{
		Provider: provider,
		APIKey:   s.configStore.GetString(apiKeyKey),
		Endpoint: s.configStore.GetString(endpointKey),
		Model:    s.getString(modelKey, defaultModels[provider]),
	}
}

// saveProviderSettings writes one provider's section.
func (s *SettingsService) saveProviderSettings(ps domain.ProviderSettings) error {
	apiKeyKey, endpointKey, modelKey := providerKeys(ps.Provider)

	if ps.APIKey != "" {
		if err := s.configStore.Set(apiKeyKey, ps.APIKey); err != nil {
			return fmt.Errorf("save api key: %w", err)
		}
	}
	if err := s.configStore.Set(endpointKey, ps.Endpoint); err != nil {
		return fmt.Errorf("save endpoint: %w", err)
	}
	if err := s.configStore.Set(modelKey, ps.Model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// getPromptTemplate loads the rewrite prompt from the prompt store,
// falling back to the embedded default.
func (s *SettingsService) getPromptTemplate() string {
	if s.promptStore == nil {
		return domain.DefaultPromptTemplate
	}
	prompt, err := s.promptStore.Load(driven.PromptJournal)
	if err != nil || prompt == "" {
		return domain.DefaultPromptTemplate
	}
	return prompt
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
