package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driving"
	"github.com/daybook-labs/daybook/internal/logger"
)

// SchedulerService triggers batch runs at the configured check
// frequency. A tick that lands while a batch is still running is
// skipped, not queued.
type SchedulerService struct {
	processor driving.BatchProcessor
	settings  *SettingsService
	log       *logger.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSchedulerService creates a scheduler.
func NewSchedulerService(processor driving.BatchProcessor, settings *SettingsService, log *logger.Logger) *SchedulerService {
	if log == nil {
		log = logger.Discard()
	}
	return &SchedulerService{
		processor: processor,
		settings:  settings,
		log:       log,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is
// called or the context is cancelled. An immediate run happens at
// startup; later runs follow the configured interval.
func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	interval, err := s.interval()
	if err != nil {
		return err
	}
	s.log.Infof("scheduler started, checking every %s", interval)

	s.runBatch(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.runBatch(ctx)
		}
	}
}

// Stop gracefully shuts down the scheduler and waits for a running
// batch to complete.
func (s *SchedulerService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// interval reads the configured check frequency.
func (s *SchedulerService) interval() (time.Duration, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return 0, err
	}
	minutes := settings.FrequencyMinutes
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute, nil
}

// runBatch executes one batch, treating a busy processor as a skipped
// tick.
func (s *SchedulerService) runBatch(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	result, err := s.processor.ProcessAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrBatchInProgress) {
			s.log.Debugf("scheduler: batch still running, skipping tick")
			return
		}
		s.log.Errorf("scheduler: batch failed: %v", err)
		return
	}

	if result.Processed > 0 || len(result.Errors) > 0 {
		s.log.Infof("scheduler: %d processed, %d failed", result.Processed, len(result.Errors))
	}
}
