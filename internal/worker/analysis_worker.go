package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MaharajTanim/apricity/internal/analysis"
	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/MaharajTanim/apricity/internal/platform/logger"
	"github.com/MaharajTanim/apricity/internal/store"
	"github.com/google/uuid"
)

// JobTypeEntryAnalysis is the queue job type handled by EntryAnalysisWorker.
const JobTypeEntryAnalysis = "ml-analysis"

// Common errors
var (
	ErrNilEntryStore   = errors.New("entry store cannot be nil")
	ErrNilAnalyzer     = errors.New("analyzer cannot be nil")
	ErrInvalidPayload  = errors.New("invalid analysis payload")
	ErrEmptyPayloadID  = errors.New("analysis payload entry ID cannot be empty")
	ErrEntryUnanalyzed = errors.New("entry cannot be analyzed")
)

// AnalysisPayload is the payload enqueued for entry analysis jobs.
type AnalysisPayload struct {
	EntryID uuid.UUID `json:"entry_id"`
}

// EntryAnalysisWorker processes entry analysis jobs. For each job it loads
// the entry, marks it processing, runs the analyzer, stores the result and
// marks the entry completed. On any failure it marks the entry failed and
// returns the error so the queue can retry; a later successful attempt
// overwrites both the status and the stored analysis.
type EntryAnalysisWorker struct {
	entries  store.EntryStore
	analyzer analysis.Analyzer
	logger   *slog.Logger
}

// NewEntryAnalysisWorker creates a worker for entry analysis jobs.
func NewEntryAnalysisWorker(
	entries store.EntryStore,
	analyzer analysis.Analyzer,
	log *slog.Logger,
) (*EntryAnalysisWorker, error) {
	if entries == nil {
		return nil, ErrNilEntryStore
	}
	if analyzer == nil {
		return nil, ErrNilAnalyzer
	}
	if log == nil {
		log = slog.Default()
	}

	return &EntryAnalysisWorker{
		entries:  entries,
		analyzer: analyzer,
		logger:   log.With(slog.String("component", "analysis_worker")),
	}, nil
}

// Process handles one attempt of an entry analysis job.
func (w *EntryAnalysisWorker) Process(ctx context.Context, payload any) error {
	entryID, err := w.entryID(payload)
	if err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, w.logger).With(
		slog.String("entry_id", entryID.String()),
	)
	log.Info("starting entry analysis")

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("analysis cancelled by context: %w", err)
	}

	entry, err := w.entries.GetByID(ctx, entryID)
	if err != nil {
		log.Error("failed to retrieve entry", slog.String("error", err.Error()))
		return fmt.Errorf("failed to retrieve entry: %w", err)
	}

	if err := w.entries.UpdateStatus(ctx, entryID, domain.EntryStatusProcessing); err != nil {
		log.Error("failed to mark entry processing", slog.String("error", err.Error()))
		return fmt.Errorf("failed to mark entry processing: %w", err)
	}

	result, err := w.analyzer.Analyze(ctx, entryID, entry.Text)
	if err != nil {
		w.markFailed(ctx, log, entryID)
		log.Error("analysis failed", slog.String("error", err.Error()))
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := w.entries.SaveAnalysis(ctx, result); err != nil {
		w.markFailed(ctx, log, entryID)
		log.Error("failed to save analysis", slog.String("error", err.Error()))
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	if err := w.entries.UpdateStatus(ctx, entryID, domain.EntryStatusCompleted); err != nil {
		// The result is already stored, so a final-status failure is logged
		// rather than retried.
		log.Error("failed to mark entry completed, analysis was saved",
			slog.String("error", err.Error()))
	}

	log.Info("entry analysis completed",
		slog.String("sentiment", result.Sentiment),
		slog.Float64("score", result.Score))
	return nil
}

// entryID validates and extracts the entry ID from a job payload. Both the
// struct and pointer forms are accepted.
func (w *EntryAnalysisWorker) entryID(payload any) (uuid.UUID, error) {
	var p AnalysisPayload
	switch v := payload.(type) {
	case AnalysisPayload:
		p = v
	case *AnalysisPayload:
		if v == nil {
			return uuid.Nil, ErrInvalidPayload
		}
		p = *v
	default:
		return uuid.Nil, fmt.Errorf("%w: unexpected type %T", ErrInvalidPayload, payload)
	}

	if p.EntryID == uuid.Nil {
		return uuid.Nil, ErrEmptyPayloadID
	}
	return p.EntryID, nil
}

// markFailed records a failed analysis attempt on the entry. A later retry
// resets the status to processing, so a stale failed status only survives
// when the retry budget is exhausted.
func (w *EntryAnalysisWorker) markFailed(ctx context.Context, log *slog.Logger, entryID uuid.UUID) {
	if err := w.entries.UpdateStatus(ctx, entryID, domain.EntryStatusFailed); err != nil {
		log.Error("failed to mark entry failed", slog.String("error", err.Error()))
	}
}
