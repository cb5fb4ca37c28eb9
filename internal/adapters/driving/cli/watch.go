package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daybook-labs/daybook/internal/core/services"
)

var watchPoll bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source folder and process notes as they settle",
	Long: `Runs until interrupted. By default filesystem notifications on the
source folder trigger a batch shortly after the last change; with
--poll the configured check frequency drives an interval loop instead.
Either way an initial batch runs at startup.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "poll at the configured frequency instead of watching for changes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if batchProcessor == nil || settingsService == nil {
		return errNoVault()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watchPoll {
		scheduler := services.NewSchedulerService(batchProcessor, settingsService, cliLog)
		go func() {
			<-ctx.Done()
			_ = scheduler.Stop()
		}()
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scheduler failed: %w", err)
		}
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	// An immediate batch picks up anything that accumulated while
	// daybook was not running; the watcher covers changes from here on.
	if _, err := batchProcessor.ProcessAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cliLog.Warnf("initial batch failed: %v", err)
	}

	sourceDir := filepath.Join(vaultDir, filepath.FromSlash(settings.SourceFolder))
	watcher := services.NewWatcherService(sourceDir, batchProcessor, cliLog)
	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher failed: %w", err)
	}
	return nil
}
