package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/MaharajTanim/apricity/internal/platform/logger"
	"github.com/MaharajTanim/apricity/internal/store"
	"github.com/google/uuid"
)

// PostgresEntryStore implements the store.EntryStore interface
// using a PostgreSQL database.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgresEntryStore with the given
// database connection or transaction handle and logger. If logger is nil,
// a default logger is used.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore interface
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// Create implements store.EntryStore.Create
// It saves a new journal entry to the database, handling domain validation.
func (s *PostgresEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("entry validation failed during creation",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO entries (id, user_id, text, mood, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Text,
		entry.Mood,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("user_id", entry.UserID.String()))
		return MapError(err)
	}

	log.Debug("entry created successfully",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// GetByID implements store.EntryStore.GetByID
// It retrieves an entry by its unique ID.
func (s *PostgresEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, text, mood, status, created_at, updated_at
		FROM entries
		WHERE id = $1
	`

	var entry domain.Entry
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Text,
		&entry.Mood,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			log.Debug("entry not found", slog.String("entry_id", id.String()))
			return nil, store.ErrEntryNotFound
		}

		log.Error("failed to get entry by ID",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, MapError(err)
	}

	return &entry, nil
}

// UpdateStatus implements store.EntryStore.UpdateStatus
// It updates the analysis status of an existing entry.
func (s *PostgresEntryStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.EntryStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch status {
	case domain.EntryStatusPending,
		domain.EntryStatusProcessing,
		domain.EntryStatusCompleted,
		domain.EntryStatusFailed:
	default:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidEntryState)
	}

	query := `
		UPDATE entries
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		log.Error("failed to update entry status",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "entry"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("entry not found for status update", slog.String("entry_id", id.String()))
			return store.ErrEntryNotFound
		}
		return err
	}

	log.Debug("entry status updated",
		slog.String("entry_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// SaveAnalysis implements store.EntryStore.SaveAnalysis
// It persists the analysis result for an entry. A retried job overwrites the
// previous result for the same entry via an upsert.
func (s *PostgresEntryStore) SaveAnalysis(ctx context.Context, result *domain.Analysis) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		log.Warn("analysis validation failed",
			slog.String("error", err.Error()),
			slog.String("entry_id", result.EntryID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	keywords, err := json.Marshal(result.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}

	query := `
		INSERT INTO analyses (id, entry_id, sentiment, score, keywords, suggestions, model_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entry_id) DO UPDATE
		SET id = EXCLUDED.id,
			sentiment = EXCLUDED.sentiment,
			score = EXCLUDED.score,
			keywords = EXCLUDED.keywords,
			suggestions = EXCLUDED.suggestions,
			model_name = EXCLUDED.model_name,
			created_at = EXCLUDED.created_at
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		result.ID,
		result.EntryID,
		result.Sentiment,
		result.Score,
		keywords,
		suggestions,
		result.ModelName,
		result.CreatedAt,
	)
	if err != nil {
		log.Error("failed to save analysis",
			slog.String("error", err.Error()),
			slog.String("entry_id", result.EntryID.String()))
		return MapError(err)
	}

	log.Debug("analysis saved",
		slog.String("entry_id", result.EntryID.String()),
		slog.String("sentiment", result.Sentiment))
	return nil
}

// GetAnalysisByEntryID implements store.EntryStore.GetAnalysisByEntryID
// It retrieves the analysis for the given entry.
func (s *PostgresEntryStore) GetAnalysisByEntryID(
	ctx context.Context,
	entryID uuid.UUID,
) (*domain.Analysis, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, entry_id, sentiment, score, keywords, suggestions, model_name, created_at
		FROM analyses
		WHERE entry_id = $1
	`

	var (
		analysis    domain.Analysis
		keywords    []byte
		suggestions []byte
	)
	err := s.db.QueryRowContext(ctx, query, entryID).Scan(
		&analysis.ID,
		&analysis.EntryID,
		&analysis.Sentiment,
		&analysis.Score,
		&keywords,
		&suggestions,
		&analysis.ModelName,
		&analysis.CreatedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			log.Debug("analysis not found", slog.String("entry_id", entryID.String()))
			return nil, store.ErrAnalysisNotFound
		}

		log.Error("failed to get analysis",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID.String()))
		return nil, MapError(err)
	}

	if err := json.Unmarshal(keywords, &analysis.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	if err := json.Unmarshal(suggestions, &analysis.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	return &analysis, nil
}
