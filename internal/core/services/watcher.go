package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driving"
	"github.com/daybook-labs/daybook/internal/logger"
)

// debounceDelay is how long the watcher waits after the last filesystem
// event before triggering a batch. Editors fire several events per
// save, so reacting to each one would waste provider calls.
const debounceDelay = 2 * time.Second

// WatcherService triggers batch runs when markdown files change in the
// source folder, as an alternative to interval polling.
type WatcherService struct {
	dir       string
	processor driving.BatchProcessor
	log       *logger.Logger
	debounce  time.Duration
}

// NewWatcherService creates a watcher for the given source directory
// (an absolute filesystem path).
func NewWatcherService(dir string, processor driving.BatchProcessor, log *logger.Logger) *WatcherService {
	if log == nil {
		log = logger.Discard()
	}
	return &WatcherService{
		dir:       dir,
		processor: processor,
		log:       log,
		debounce:  debounceDelay,
	}
}

// Start watches the source directory until the context is cancelled.
func (s *WatcherService) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}
	s.log.Infof("watching %s for changes", s.dir)

	// The timer starts stopped; the first relevant event arms it.
	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			s.log.Debugf("change detected: %s", event.Name)
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warnf("watch error: %v", err)

		case <-timer.C:
			s.runBatch(ctx)
		}
	}
}

// relevant reports whether an event should arm the debounce timer:
// only writes and creates of markdown files count.
func (s *WatcherService) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".md")
}

// runBatch executes one batch, treating a busy processor as already
// handled.
func (s *WatcherService) runBatch(ctx context.Context) {
	result, err := s.processor.ProcessAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrBatchInProgress) {
			s.log.Debugf("watcher: batch still running")
			return
		}
		s.log.Errorf("watcher: batch failed: %v", err)
		return
	}

	if result.Processed > 0 || len(result.Errors) > 0 {
		s.log.Infof("watcher: %d processed, %d failed", result.Processed, len(result.Errors))
	}
}
