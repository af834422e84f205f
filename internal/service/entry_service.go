package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/MaharajTanim/apricity/internal/queue"
	"github.com/MaharajTanim/apricity/internal/store"
	"github.com/MaharajTanim/apricity/internal/worker"
	"github.com/google/uuid"
)

// Enqueuer is the subset of the queue used by the entry service. Enqueue
// never blocks and never fails; the receipt only acknowledges admission.
type Enqueuer interface {
	Enqueue(jobType string, payload any, opts ...queue.EnqueueOption) queue.Receipt
}

// EntryService provides journal entry operations.
type EntryService interface {
	// CreateEntryAndEnqueueAnalysis saves a new entry and enqueues a
	// background analysis job for it. The entry is returned immediately
	// with pending status; callers observe the analysis outcome by
	// polling GetEntry.
	CreateEntryAndEnqueueAnalysis(
		ctx context.Context,
		userID uuid.UUID,
		text, mood string,
	) (*domain.Entry, queue.Receipt, error)

	// GetEntry retrieves an entry by its ID.
	GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error)

	// GetEntryWithAnalysis retrieves an entry together with its analysis,
	// if one has been stored. The analysis is nil while the background job
	// has not completed.
	GetEntryWithAnalysis(
		ctx context.Context,
		entryID uuid.UUID,
	) (*domain.Entry, *domain.Analysis, error)
}

// Common sentinel errors for EntryService
var (
	// ErrEntryNotFound indicates that the entry does not exist
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryServiceError wraps errors from the entry service with context.
type EntryServiceError struct {
	// Operation is the operation that failed (e.g., "create_entry")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for EntryServiceError.
func (e *EntryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("entry service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("entry service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EntryServiceError) Unwrap() error {
	return e.Err
}

// NewEntryServiceError creates a new EntryServiceError.
// It returns known sentinel errors directly without wrapping.
func NewEntryServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrEntryNotFound) || errors.Is(err, store.ErrEntryNotFound) {
		return ErrEntryNotFound
	}

	return &EntryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	entries  store.EntryStore
	enqueuer Enqueuer
	logger   *slog.Logger
}

// NewEntryService creates a new EntryService.
// It returns an error if any of the required dependencies are nil.
func NewEntryService(
	entries store.EntryStore,
	enqueuer Enqueuer,
	logger *slog.Logger,
) (EntryService, error) {
	if entries == nil {
		return nil, &EntryServiceError{
			Operation: "create_service",
			Message:   "entry store cannot be nil",
		}
	}
	if enqueuer == nil {
		return nil, &EntryServiceError{
			Operation: "create_service",
			Message:   "enqueuer cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &entryServiceImpl{
		entries:  entries,
		enqueuer: enqueuer,
		logger:   logger.With("component", "entry_service"),
	}, nil
}

// CreateEntryAndEnqueueAnalysis creates a new entry with pending status and
// hands an analysis job to the background queue. The entry is persisted
// before the job is enqueued so the worker can always load it.
func (s *entryServiceImpl) CreateEntryAndEnqueueAnalysis(
	ctx context.Context,
	userID uuid.UUID,
	text, mood string,
) (*domain.Entry, queue.Receipt, error) {
	entry, err := domain.NewEntry(userID, text, mood)
	if err != nil {
		s.logger.Error("failed to create entry object",
			"error", err,
			"user_id", userID)
		return nil, queue.Receipt{}, NewEntryServiceError(
			"create_entry", "failed to create entry object", err)
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		s.logger.Error("failed to save entry",
			"error", err,
			"user_id", userID,
			"entry_id", entry.ID)
		return nil, queue.Receipt{}, NewEntryServiceError(
			"create_entry", "failed to save entry to database", err)
	}

	receipt := s.enqueuer.Enqueue(
		worker.JobTypeEntryAnalysis,
		worker.AnalysisPayload{EntryID: entry.ID},
	)

	s.logger.Info("entry created and analysis enqueued",
		"entry_id", entry.ID,
		"user_id", userID,
		"job_id", receipt.ID,
		"queue_position", receipt.QueuePosition)

	return entry, receipt, nil
}

// GetEntry retrieves an entry by its ID.
func (s *entryServiceImpl) GetEntry(
	ctx context.Context,
	entryID uuid.UUID,
) (*domain.Entry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("failed to retrieve entry",
			"error", err,
			"entry_id", entryID)
		return nil, NewEntryServiceError("get_entry", "failed to retrieve entry", err)
	}
	return entry, nil
}

// GetEntryWithAnalysis retrieves an entry and its analysis. A missing
// analysis is not an error: the job may still be queued, retrying, or
// terminally failed, which the entry status reflects.
func (s *entryServiceImpl) GetEntryWithAnalysis(
	ctx context.Context,
	entryID uuid.UUID,
) (*domain.Entry, *domain.Analysis, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.entries.GetAnalysisByEntryID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrAnalysisNotFound) {
			return entry, nil, nil
		}
		s.logger.Error("failed to retrieve analysis",
			"error", err,
			"entry_id", entryID)
		return nil, nil, NewEntryServiceError(
			"get_entry", "failed to retrieve analysis", err)
	}

	return entry, result, nil
}
