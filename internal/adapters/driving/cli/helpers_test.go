package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/daybook-labs/daybook/internal/adapters/driven/ai"
	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/core/ports/driving"
	"github.com/daybook-labs/daybook/internal/core/services"
	"github.com/daybook-labs/daybook/internal/logger"
)

// setupTest marks the CLI as wired so the persistent pre-run does not
// touch the real filesystem, and restores all package state afterwards.
func setupTest(t *testing.T) {
	t.Helper()

	prevWired := wired
	prevSettings := settingsService
	prevConfig := configStore
	prevProcessor := batchProcessor
	prevRunStore := runStore
	prevFactory := providerFactory
	prevVaultDir := vaultDir
	prevCache := modelCache

	wired = true
	modelCache = ai.NewModelCache(ai.DefaultModelCacheTTL)
	t.Cleanup(func() {
		wired = prevWired
		settingsService = prevSettings
		configStore = prevConfig
		batchProcessor = prevProcessor
		runStore = prevRunStore
		providerFactory = prevFactory
		vaultDir = prevVaultDir
		modelCache = prevCache
		rootCmd.SetArgs(nil)
	})
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// memConfig is an in-memory driven.ConfigStore for CLI tests.
type memConfig struct {
	mu   sync.Mutex
	data map[string]any
}

var _ driven.ConfigStore = (*memConfig)(nil)

func newMemConfig() *memConfig {
	return &memConfig{data: make(map[string]any)}
}

func (m *memConfig) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *memConfig) GetString(key string) string {
	val, _ := m.Get(key)
	s, _ := val.(string)
	return s
}

func (m *memConfig) GetInt(key string) int {
	val, _ := m.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *memConfig) GetBool(key string) bool {
	val, _ := m.Get(key)
	b, _ := val.(bool)
	return b
}

func (m *memConfig) GetStringSlice(key string) []string {
	val, _ := m.Get(key)
	s, _ := val.([]string)
	return s
}

func (m *memConfig) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memConfig) Save() error  { return nil }
func (m *memConfig) Load() error  { return nil }
func (m *memConfig) Path() string { return "memory" }

// newTestSettings wires a settings service over an in-memory store.
func newTestSettings() (*services.SettingsService, *memConfig) {
	cfg := newMemConfig()
	return services.NewSettingsService(cfg, nil), cfg
}

// fakeProcessor is a canned driving.BatchProcessor.
type fakeProcessor struct {
	result   *driving.BatchResult
	err      error
	dryPaths []string
	dryErr   error
	calls    int
}

var _ driving.BatchProcessor = (*fakeProcessor)(nil)

func (p *fakeProcessor) ProcessAll(ctx context.Context) (*driving.BatchResult, error) {
	p.calls++
	if p.err != nil {
		return &driving.BatchResult{}, p.err
	}
	if p.result != nil {
		return p.result, nil
	}
	return &driving.BatchResult{}, nil
}

func (p *fakeProcessor) DryRun(ctx context.Context) ([]string, error) {
	return p.dryPaths, p.dryErr
}

// fakeRunStore serves canned run history.
type fakeRunStore struct {
	runs    []driven.RunRecord
	listErr error
	limit   int
}

var _ driven.RunStore = (*fakeRunStore)(nil)

func (s *fakeRunStore) SaveRun(ctx context.Context, run driven.RunRecord) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *fakeRunStore) ListRuns(ctx context.Context, limit int) ([]driven.RunRecord, error) {
	s.limit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.runs, nil
}

func (s *fakeRunStore) Close() error { return nil }

// fakeCLIProvider implements driven.Provider plus model listing.
type fakeCLIProvider struct {
	models     []string
	modelsErr  error
	connectErr error
	closed     bool
}

var _ driven.Provider = (*fakeCLIProvider)(nil)
var _ driven.ModelLister = (*fakeCLIProvider)(nil)

func (p *fakeCLIProvider) Process(ctx context.Context, content string, opts driven.ProcessOptions) (*driven.ProcessResult, error) {
	return &driven.ProcessResult{Content: content, Sentiment: domain.SentimentNeutral}, nil
}

func (p *fakeCLIProvider) TestConnection(ctx context.Context) error { return p.connectErr }
func (p *fakeCLIProvider) ValidateConfig() []string                 { return nil }
func (p *fakeCLIProvider) Name() string                             { return "fake" }

func (p *fakeCLIProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.models, p.modelsErr
}

func (p *fakeCLIProvider) Close() error {
	p.closed = true
	return nil
}

// stubFactory makes providerFactory return the given provider.
func stubFactory(provider driven.Provider) services.ProviderFactory {
	return func(_ domain.ProviderSettings, _ *logger.Logger) (driven.Provider, error) {
		return provider, nil
	}
}
