package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBatchInProgress indicates a processing batch is already running.
	// Concurrent triggers are rejected, not queued.
	ErrBatchInProgress = errors.New("batch already in progress")

	// ErrUnsupportedProvider indicates an unknown AI provider was selected.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderNotConfigured indicates the selected provider is missing
	// required configuration (API key, endpoint or model).
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrEmptyResponse indicates the AI backend returned an empty or
	// whitespace-only completion.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMissingPlaceholder indicates the prompt template lacks the
	// required {content} placeholder.
	ErrMissingPlaceholder = errors.New("prompt template missing {content} placeholder")
)
