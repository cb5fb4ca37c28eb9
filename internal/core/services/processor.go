package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/core/ports/driving"
	"github.com/daybook-labs/daybook/internal/journal"
	"github.com/daybook-labs/daybook/internal/logger"
)

// Ensure ProcessorService implements the interface.
var _ driving.BatchProcessor = (*ProcessorService)(nil)

// ProviderFactory creates an AI provider from settings. Injected so
// the core does not depend on the adapter packages.
type ProviderFactory func(settings domain.ProviderSettings, log *logger.Logger) (driven.Provider, error)

// ProcessorService runs the note-processing pipeline: enumerate
// eligible notes, rewrite each through the AI provider and write the
// generated document. At most one batch runs at a time.
type ProcessorService struct {
	settings *SettingsService
	decision *DecisionService
	vault    driven.Vault
	factory  ProviderFactory
	runStore driven.RunStore
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

// NewProcessorService creates a processor. runStore may be nil; runs
// are then not recorded.
func NewProcessorService(
	settings *SettingsService,
	decision *DecisionService,
	vault driven.Vault,
	factory ProviderFactory,
	runStore driven.RunStore,
	log *logger.Logger,
) *ProcessorService {
	if log == nil {
		log = logger.Discard()
	}
	return &ProcessorService{
		settings: settings,
		decision: decision,
		vault:    vault,
		factory:  factory,
		runStore: runStore,
		log:      log,
		now:      time.Now,
	}
}

// ProcessAll processes every eligible note sequentially. A failure on
// one note is recorded and the batch continues; the batch itself only
// fails on setup errors. Concurrent calls are rejected with
// domain.ErrBatchInProgress, not queued.
func (s *ProcessorService) ProcessAll(ctx context.Context) (*driving.BatchResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return &driving.BatchResult{}, domain.ErrBatchInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := s.now()

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderNotConfigured, problems[0])
	}

	candidates, err := s.decision.Candidates(ctx, settings, start)
	if err != nil {
		return nil, err
	}

	result := &driving.BatchResult{}
	if len(candidates) > 0 {
		if err := s.vault.MkdirAll(ctx, settings.DestinationFolder); err != nil {
			return nil, fmt.Errorf("create destination folder: %w", err)
		}

		// One provider instance serves the whole batch.
		provider, err := s.factory(settings.AI, s.log)
		if err != nil {
			return nil, err
		}
		defer provider.Close()

		for _, candidate := range candidates {
			if ctx.Err() != nil {
				break
			}
			if err := s.processNote(ctx, provider, settings, candidate); err != nil {
				s.log.Warnf("failed to process %s: %v", candidate.Path, err)
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", candidate.Path, err))
				continue
			}
			result.Processed++
		}
	}

	result.Duration = s.now().Sub(start)
	s.recordRun(ctx, start, result)

	s.log.Infof("batch complete: %d processed, %d failed in %s",
		result.Processed, len(result.Errors), result.Duration.Round(time.Millisecond))
	return result, nil
}

// DryRun lists the notes ProcessAll would process, without calling the
// AI backend or writing anything.
func (s *ProcessorService) DryRun(ctx context.Context) ([]string, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	candidates, err := s.decision.Candidates(ctx, settings, s.now())
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	return paths, nil
}

// processNote runs one note through the pipeline. The destination
// document is written only after generation fully succeeds.
func (s *ProcessorService) processNote(
	ctx context.Context,
	provider driven.Provider,
	settings *domain.AppSettings,
	candidate Candidate,
) error {
	raw, err := s.vault.Read(ctx, candidate.Path)
	if err != nil {
		return err
	}

	note := journal.ParseNote(candidate.Path, candidate.Date, raw)
	body := note.Body()
	if body == "" {
		return fmt.Errorf("%w: no log entries found", domain.ErrInvalidInput)
	}

	s.log.Debugf("processing %s (%d entries, %d coordinates)",
		candidate.Path, len(note.Entries), len(note.Coordinates))

	processed, err := provider.Process(ctx, body, driven.ProcessOptions{
		PromptTemplate: settings.PromptTemplate,
		Language:       settings.Language,
	})
	if err != nil {
		return err
	}

	doc := journal.Assemble(note, processed.Content, processed.Sentiment)
	rendered := journal.Render(doc, s.now())

	outputPath := s.decision.OutputPath(settings, candidate.Date)
	if err := s.vault.Write(ctx, outputPath, rendered); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// recordRun persists the batch summary. History is advisory, so
// failures are logged and swallowed.
func (s *ProcessorService) recordRun(ctx context.Context, start time.Time, result *driving.BatchResult) {
	if s.runStore == nil {
		return
	}

	err := s.runStore.SaveRun(ctx, driven.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: start,
		Duration:  result.Duration,
		Processed: result.Processed,
		Errors:    result.Errors,
	})
	if err != nil {
		s.log.Warnf("failed to record run history: %v", err)
	}
}
