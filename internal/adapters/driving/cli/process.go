package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-labs/daybook/internal/core/domain"
)

var processDryRun bool

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process all unprocessed daily notes",
	Long: `Scans the source folder for dated notes from past days that do not
have a journal document yet, rewrites each through the configured AI
provider and writes the result to the destination folder.

To re-process a day, delete its journal document and run again.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processDryRun, "dry-run", false, "list eligible notes without processing them")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	if batchProcessor == nil {
		return errNoVault()
	}

	ctx := cmd.Context()

	if processDryRun {
		paths, err := batchProcessor.DryRun(ctx)
		if err != nil {
			return fmt.Errorf("dry run failed: %w", err)
		}
		if len(paths) == 0 {
			cmd.Println("Nothing to process.")
			return nil
		}
		cmd.Printf("Would process %d note(s):\n", len(paths))
		for _, p := range paths {
			cmd.Printf("  %s\n", p)
		}
		return nil
	}

	result, err := batchProcessor.ProcessAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrBatchInProgress) {
			return errors.New("a batch is already running")
		}
		return fmt.Errorf("processing failed: %w", err)
	}

	if result.Processed == 0 && len(result.Errors) == 0 {
		cmd.Println("Nothing to process.")
		return nil
	}

	cmd.Printf("Processed %d note(s) in %s.\n", result.Processed, result.Duration.Round(time.Millisecond))
	for _, msg := range result.Errors {
		cmd.Printf("  failed: %s\n", msg)
	}
	if !result.Success() {
		return fmt.Errorf("%d note(s) failed", len(result.Errors))
	}
	return nil
}
