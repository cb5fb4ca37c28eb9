package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent processing runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run history is not available")
	}

	runs, err := runStore.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %d processed, %d failed, took %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Processed, len(run.Errors),
			run.Duration.Round(time.Millisecond))
		for _, msg := range run.Errors {
			cmd.Printf("    %s\n", msg)
		}
	}
	return nil
}
