package store

import (
	"context"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/google/uuid"
)

// EntryStore defines the interface for journal entry persistence. The
// analysis worker records its outcome here; this is the state enqueuing
// callers poll, since the queue itself never reports job results.
type EntryStore interface {
	// Create saves a new entry to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Entry if data is invalid.
	Create(ctx context.Context, entry *domain.Entry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)

	// UpdateStatus updates the analysis status of an existing entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntryStatus) error

	// SaveAnalysis persists the analysis result for an entry, replacing any
	// previous result for the same entry (retried jobs overwrite).
	SaveAnalysis(ctx context.Context, result *domain.Analysis) error

	// GetAnalysisByEntryID retrieves the analysis for the given entry.
	// Returns ErrAnalysisNotFound if no analysis has been stored yet.
	GetAnalysisByEntryID(ctx context.Context, entryID uuid.UUID) (*domain.Analysis, error)
}
