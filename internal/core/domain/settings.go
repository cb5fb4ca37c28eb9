package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// AIProvider identifies a text-generation backend.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGemini, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LanguageAuto asks the provider to keep the note's original language
// instead of translating to a fixed one.
const LanguageAuto = "auto"

// ProviderSettings holds per-provider credentials, endpoint and model.
type ProviderSettings struct {
	// Provider selects the backend.
	Provider AIProvider

	// APIKey is the API key (cloud providers).
	APIKey string

	// Endpoint is the API base URL. Defaults per provider when empty.
	Endpoint string

	// Model is the model name sent with each request.
	Model string
}

// Validate returns a list of human-readable configuration problems.
// An empty list means the settings are usable.
func (s ProviderSettings) Validate() []string {
	var problems []string

	if !s.Provider.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown provider %q", s.Provider))
		return problems
	}

	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		problems = append(problems, fmt.Sprintf("%s: API key is required", s.Provider))
	}
	if s.Provider == AIProviderOpenAI && s.APIKey != "" && !strings.HasPrefix(s.APIKey, "sk-") {
		problems = append(problems, "openai: API key should start with \"sk-\"")
	}
	if s.Provider == AIProviderOllama && s.Endpoint != "" &&
		!strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://") {
		problems = append(problems, "ollama: endpoint must be an http(s) URL")
	}
	if s.Model == "" {
		problems = append(problems, fmt.Sprintf("%s: model is required", s.Provider))
	}

	return problems
}

// AppSettings is the full configuration surface consumed by the core.
type AppSettings struct {
	// SourceFolder is the vault folder scanned for daily notes.
	SourceFolder string

	// DateFormat is the date template source-note filenames follow.
	DateFormat string

	// DestinationFolder receives generated documents.
	DestinationFolder string

	// FilenameTemplate is the date template for destination filenames.
	FilenameTemplate string

	// AI holds the selected provider's settings.
	AI ProviderSettings

	// Language is an output language code, or LanguageAuto to preserve
	// the note's original language.
	Language string

	// FrequencyMinutes is the scheduler check interval.
	FrequencyMinutes int

	// PromptTemplate is the rewrite prompt. Must contain exactly one
	// {content} placeholder.
	PromptTemplate string
}

// Validate returns a list of human-readable configuration problems.
func (s AppSettings) Validate() []string {
	var problems []string

	if s.SourceFolder == "" {
		problems = append(problems, "source folder is not set")
	}
	if s.DestinationFolder == "" {
		problems = append(problems, "destination folder is not set")
	}
	if s.FrequencyMinutes < 1 {
		problems = append(problems, "check frequency must be at least 1 minute")
	}
	if strings.Count(s.PromptTemplate, "{content}") != 1 {
		problems = append(problems, "prompt template must contain exactly one {content} placeholder")
	}
	problems = append(problems, s.AI.Validate()...)

	return problems
}

// DefaultPromptTemplate is the rewrite prompt used when none is configured.
const DefaultPromptTemplate = `Rewrite the following daily log entries into a flowing journal narrative.
Keep every factual detail. Do not invent events.
After the narrative, add a final line of the form "SENTIMENT: <label>" where
<label> is one of: Very Happy, Happy, Neutral, Sad, Very Sad.

Entries:
{content}`

// DefaultAppSettings returns the settings used before any configuration
// is stored.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		SourceFolder:      "Daily",
		DateFormat:        "YYYY-MM-DD",
		DestinationFolder: "Journal",
		FilenameTemplate:  "Journal-YYYY-MM-DD.md",
		AI: ProviderSettings{
			Provider: AIProviderOllama,
			Model:    "llama3.2",
		},
		Language:         LanguageAuto,
		FrequencyMinutes: 60,
		PromptTemplate:   DefaultPromptTemplate,
	}
}
