package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/daybook-labs/daybook/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the vault folders, AI provider and processing
options. Run without a subcommand to show the current settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider <openai|gemini|ollama>",
	Short: "Switch the AI provider",
	Long: `Switches the active AI provider. Credentials for other providers are
kept, so switching back does not require re-entering the API key.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsProvider,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets one configuration value. Available keys:

  vault                          vault root directory
  source.folder                  folder scanned for daily notes
  source.date_format             date template of note filenames
  destination.folder             folder receiving journal documents
  destination.filename_template  date template for document filenames
  ai.language                    output language code, or "auto"
  frequency                      check interval in minutes`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate settings and test the provider connection",
	RunE:  runSettingsValidate,
}

// Provider command flags.
var (
	providerModel    string
	providerAPIKey   string
	providerEndpoint string
)

func init() {
	settingsProviderCmd.Flags().StringVar(&providerModel, "model", "", "model name (provider default when empty)")
	settingsProviderCmd.Flags().StringVar(&providerAPIKey, "api-key", "", "API key for cloud providers")
	settingsProviderCmd.Flags().StringVar(&providerEndpoint, "endpoint", "", "API base URL override")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Vault]")
	if vaultDir != "" {
		cmd.Printf("  Root: %s\n", vaultDir)
	} else {
		cmd.Printf("  Root: (not set)\n")
	}
	cmd.Printf("  Source folder: %s\n", settings.SourceFolder)
	cmd.Printf("  Note date format: %s\n", settings.DateFormat)
	cmd.Printf("  Destination folder: %s\n", settings.DestinationFolder)
	cmd.Printf("  Filename template: %s\n", settings.FilenameTemplate)
	cmd.Println()

	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", settings.AI.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.AI.Model)
	if settings.AI.Provider.IsLocal() && settings.AI.Endpoint != "" {
		cmd.Printf("  Endpoint: %s\n", settings.AI.Endpoint)
	}
	if settings.AI.Provider.RequiresAPIKey() {
		if settings.AI.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.AI.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Language: %s\n", settings.Language)
	cmd.Println()

	cmd.Println("[Processing]")
	cmd.Printf("  Check frequency: %d minute(s)\n", settings.FrequencyMinutes)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'daybook settings provider' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsProvider(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(args[0])
	if err := settingsService.SetProvider(provider, providerModel, providerAPIKey, providerEndpoint); err != nil {
		return err
	}

	// Cached model lists may belong to the old configuration.
	modelCache.Invalidate(provider)

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	cmd.Printf("Provider set to %s (%s).\n", settings.AI.Provider.Description(), settings.AI.Model)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	switch key {
	case keyVault:
		return setVaultDir(cmd, value)
	case "source.folder":
		settings.SourceFolder = value
	case "source.date_format":
		settings.DateFormat = value
	case "destination.folder":
		settings.DestinationFolder = value
	case "destination.filename_template":
		settings.FilenameTemplate = value
	case "ai.language":
		settings.Language = value
	case "frequency":
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 1 {
			return fmt.Errorf("frequency must be a positive number of minutes, got %q", value)
		}
		settings.FrequencyMinutes = minutes
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	cmd.Printf("Set %s to %q.\n", key, value)
	return nil
}

// setVaultDir stores the vault root directory. Takes effect on the
// next invocation; this process keeps its current wiring.
func setVaultDir(cmd *cobra.Command, dir string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := configStore.Set(keyVault, dir); err != nil {
		return fmt.Errorf("save vault directory: %w", err)
	}
	cmd.Printf("Vault set to %q.\n", dir)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings are valid.")

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	provider, err := providerFactory(settings.AI, cliLog)
	if err != nil {
		return err
	}
	defer provider.Close() //nolint:errcheck // Nothing to do on close failure

	cmd.Printf("Testing connection to %s... ", settings.AI.Provider.Description())
	if err := provider.TestConnection(cmd.Context()); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}
