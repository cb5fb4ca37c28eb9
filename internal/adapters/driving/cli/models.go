package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models offered by the active AI provider",
	Long: `Asks the configured provider for its available models. Results are
cached briefly; not every provider supports listing.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	provider, err := providerFactory(settings.AI, cliLog)
	if err != nil {
		return err
	}
	defer provider.Close() //nolint:errcheck // Nothing to do on close failure

	models, err := modelCache.Models(cmd.Context(), settings.AI.Provider, provider)
	if err != nil {
		return err
	}

	cmd.Printf("Models for %s:\n", settings.AI.Provider.Description())
	for _, model := range models {
		marker := "  "
		if model == settings.AI.Model {
			marker = "* "
		}
		cmd.Printf("%s%s\n", marker, model)
	}
	return nil
}
