package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
	"github.com/daybook-labs/daybook/internal/logger"
)

// Candidate is one source note eligible for processing.
type Candidate struct {
	// Path is the note's vault-relative path.
	Path string

	// Date is the date recovered from the note's filename.
	Date time.Time
}

// DecisionService decides whether a note needs processing. The only
// state it consults is the destination file's existence: deleting a
// generated document re-enables processing for that date.
type DecisionService struct {
	vault driven.Vault
	log   *logger.Logger
}

// NewDecisionService creates a decision service.
func NewDecisionService(vault driven.Vault, log *logger.Logger) *DecisionService {
	if log == nil {
		log = logger.Discard()
	}
	return &DecisionService{vault: vault, log: log}
}

// OutputPath renders the destination path for a note date.
func (s *DecisionService) OutputPath(settings *domain.AppSettings, date time.Time) string {
	name := domain.RenderFilename(settings.FilenameTemplate, date)
	return path.Join(settings.DestinationFolder, name)
}

// IsProcessed reports whether the destination document for a date
// already exists.
func (s *DecisionService) IsProcessed(ctx context.Context, settings *domain.AppSettings, date time.Time) (bool, error) {
	exists, err := s.vault.Exists(ctx, s.OutputPath(settings, date))
	if err != nil {
		return false, fmt.Errorf("check destination: %w", err)
	}
	return exists, nil
}

// Eligible reports whether a note date may be processed: only dates
// strictly before today's local midnight qualify, so a day is never
// summarised while it can still gain entries.
func (s *DecisionService) Eligible(date, now time.Time) bool {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(midnight)
}

// Candidates enumerates the source notes that need processing: named
// by the configured date format, dated strictly in the past, and
// without an existing destination document. Notes whose names do not
// parse are skipped and logged.
func (s *DecisionService) Candidates(ctx context.Context, settings *domain.AppSettings, now time.Time) ([]Candidate, error) {
	files, err := s.vault.List(ctx, settings.SourceFolder, ".md")
	if err != nil {
		return nil, fmt.Errorf("list source notes: %w", err)
	}

	var candidates []Candidate
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f.Path), ".md")
		date, err := domain.ParseDate(name, settings.DateFormat)
		if err != nil {
			s.log.Debugf("skipping %s: %v", f.Path, err)
			continue
		}
		if !s.Eligible(date, now) {
			continue
		}

		processed, err := s.IsProcessed(ctx, settings, date)
		if err != nil {
			return nil, err
		}
		if processed {
			continue
		}
		candidates = append(candidates, Candidate{Path: f.Path, Date: date})
	}

	return candidates, nil
}
