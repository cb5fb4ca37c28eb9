// Package cli implements the daybook command-line interface. Commands
// are registered on a package-level root command from init functions;
// the services they drive are wired once by the root's persistent
// pre-run and nil-checked per command so tests can inject fakes.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daybook-labs/daybook/internal/adapters/driven/ai"
	"github.com/daybook-labs/daybook/internal/adapters/driven/config/file"
	"github.com/daybook-labs/daybook/internal/adapters/driven/storage/sqlite"
	"github.com/daybook-labs/daybook/internal/adapters/driven/vault/filesystem"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/core/ports/driving"
	"github.com/daybook-labs/daybook/internal/core/services"
	"github.com/daybook-labs/daybook/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// keyVault is the config key holding the vault root directory.
const keyVault = "vault"

// Services driven by the commands. Wired by initServices; tests set
// them directly and flip wired to true.
var (
	settingsService *services.SettingsService
	configStore     driven.ConfigStore
	batchProcessor  driving.BatchProcessor
	runStore        driven.RunStore
	modelCache      = ai.NewModelCache(ai.DefaultModelCacheTTL)

	// providerFactory builds providers for the models and settings
	// commands; swappable in tests.
	providerFactory = ai.CreateProvider

	cliLog = logger.Discard()

	// vaultDir is the resolved vault root, empty when not configured.
	vaultDir string

	wired bool
)

// Flag values.
var (
	flagVault     string
	flagConfigDir string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Turn daily notes into AI-written journal entries",
	Long: `Daybook scans a vault folder for dated daily notes, rewrites each
note's log entries into a journal narrative through an AI provider
(OpenAI, Gemini or a local Ollama), and writes the result as a
formatted document next to your notes.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "vault root directory (overrides the stored setting)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.daybook)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the real adapters. Commands that need a service
// the wiring could not provide report it themselves, so a missing
// vault does not break config-only commands.
func initServices(_ *cobra.Command, _ []string) error {
	if wired {
		return nil
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	cliLog = logger.New(os.Stderr, level)

	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store

	promptDir := ""
	if flagConfigDir != "" {
		promptDir = filepath.Join(flagConfigDir, "prompts")
	}
	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore, promptStore)

	dataDir := ""
	if flagConfigDir != "" {
		dataDir = filepath.Join(flagConfigDir, "data")
	}
	runs, err := sqlite.NewRunStore(dataDir)
	if err != nil {
		// History is advisory; keep going without it.
		cliLog.Warnf("run history unavailable: %v", err)
	} else {
		runStore = runs
	}

	vaultDir = flagVault
	if vaultDir == "" {
		vaultDir = configStore.GetString(keyVault)
	}
	if vaultDir != "" {
		vault := filesystem.New(vaultDir)
		decision := services.NewDecisionService(vault, cliLog)
		batchProcessor = services.NewProcessorService(
			settingsService, decision, vault, providerFactory, runStore, cliLog)
	}

	wired = true
	return nil
}

// errNoVault explains how to point daybook at a vault.
func errNoVault() error {
	return errors.New("vault not configured: pass --vault or run 'daybook settings set vault <dir>'")
}

// maskAPIKey hides the middle of a key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
