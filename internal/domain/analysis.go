package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Analysis-specific validation errors
var (
	ErrEmptyAnalysisID      = errors.New("analysis ID cannot be empty")
	ErrEmptyAnalysisEntryID = errors.New("analysis entry ID cannot be empty")
	ErrEmptySentiment       = errors.New("analysis sentiment cannot be empty")
	ErrScoreOutOfRange      = errors.New("analysis score must be between -1 and 1")
)

// Analysis represents the result of running a journal entry's text through
// the external analysis service. One entry has at most one analysis; retried
// jobs overwrite the previous result.
type Analysis struct {
	ID          uuid.UUID `json:"id"`
	EntryID     uuid.UUID `json:"entry_id"`
	Sentiment   string    `json:"sentiment"`
	Score       float64   `json:"score"`
	Keywords    []string  `json:"keywords,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	ModelName   string    `json:"model_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAnalysis creates an Analysis for the given entry.
// Returns an error if validation fails.
func NewAnalysis(entryID uuid.UUID, sentiment string, score float64) (*Analysis, error) {
	analysis := &Analysis{
		ID:        uuid.New(),
		EntryID:   entryID,
		Sentiment: sentiment,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	return analysis, nil
}

// Validate checks if the Analysis has valid data.
func (a *Analysis) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAnalysisID
	}

	if a.EntryID == uuid.Nil {
		return ErrEmptyAnalysisEntryID
	}

	if a.Sentiment == "" {
		return ErrEmptySentiment
	}

	if a.Score < -1 || a.Score > 1 {
		return ErrScoreOutOfRange
	}

	return nil
}
