package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()
	vaultDir = "/home/me/vault"

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Root: /home/me/vault")
	assert.Contains(t, out, "Source folder: Daily")
	assert.Contains(t, out, "Provider: Ollama (local)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowMasksAPIKey(t *testing.T) {
	setupTest(t)
	svc, _ := newTestSettings()
	settingsService = svc
	require.NoError(t, svc.SetProvider("openai", "gpt-4o", "sk-1234567890abcdef", ""))

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "API Key: sk-1...cdef")
	assert.NotContains(t, out, "sk-1234567890abcdef")
}

func TestSettingsCmd_ShowWarnsOnInvalidConfig(t *testing.T) {
	setupTest(t)
	svc, cfg := newTestSettings()
	settingsService = svc
	require.NoError(t, cfg.Set("ai.provider", "openai")) // no API key

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
}

func TestSettingsCmd_Provider(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()
	defer func() { providerModel, providerAPIKey, providerEndpoint = "", "", "" }()

	out, err := execute(t, "settings", "provider", "openai", "--api-key", "sk-test")

	require.NoError(t, err)
	assert.Contains(t, out, "Provider set to OpenAI (cloud) (gpt-4o-mini).")
}

func TestSettingsCmd_ProviderUnknown(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()
	defer func() { providerModel, providerAPIKey, providerEndpoint = "", "", "" }()

	_, err := execute(t, "settings", "provider", "claude")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestSettingsCmd_Set(t *testing.T) {
	setupTest(t)
	svc, _ := newTestSettings()
	settingsService = svc

	out, err := execute(t, "settings", "set", "source.folder", "Notes")

	require.NoError(t, err)
	assert.Contains(t, out, `Set source.folder to "Notes".`)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Notes", settings.SourceFolder)
}

func TestSettingsCmd_SetFrequency(t *testing.T) {
	setupTest(t)
	svc, _ := newTestSettings()
	settingsService = svc

	_, err := execute(t, "settings", "set", "frequency", "30")
	require.NoError(t, err)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 30, settings.FrequencyMinutes)
}

func TestSettingsCmd_SetFrequencyRejectsNonPositive(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()

	_, err := execute(t, "settings", "set", "frequency", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number of minutes")
}

func TestSettingsCmd_SetUnknownKey(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()

	_, err := execute(t, "settings", "set", "colour", "blue")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "colour"`)
}

func TestSettingsCmd_SetVault(t *testing.T) {
	setupTest(t)
	svc, cfg := newTestSettings()
	settingsService = svc
	configStore = cfg

	out, err := execute(t, "settings", "set", "vault", "/home/me/vault")

	require.NoError(t, err)
	assert.Contains(t, out, `Vault set to "/home/me/vault".`)
	assert.Equal(t, "/home/me/vault", cfg.GetString("vault"))
}

func TestSettingsCmd_Validate(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()
	provider := &fakeCLIProvider{}
	providerFactory = stubFactory(provider)

	out, err := execute(t, "settings", "validate")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings are valid.")
	assert.Contains(t, out, "OK")
	assert.True(t, provider.closed)
}

func TestSettingsCmd_ValidateConnectionFailure(t *testing.T) {
	setupTest(t)
	settingsService, _ = newTestSettings()
	providerFactory = stubFactory(&fakeCLIProvider{connectErr: errors.New("connection refused")})

	out, err := execute(t, "settings", "validate")

	require.Error(t, err)
	assert.Contains(t, out, "FAILED")
}
