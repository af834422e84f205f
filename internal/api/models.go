package api

import (
	"time"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/MaharajTanim/apricity/internal/queue"
)

// CreateEntryRequest represents the request body for creating a new entry.
// Mood is a free-form self-reported label and is optional.
type CreateEntryRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Text   string `json:"text"    validate:"required,min=1,max=10000"`
	Mood   string `json:"mood"    validate:"omitempty,max=64"`
}

// EntryResponse represents the response data for an entry.
type EntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Mood      string    `json:"mood,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnalysisResponse represents the stored analysis for an entry.
type AnalysisResponse struct {
	Sentiment   string    `json:"sentiment"`
	Score       float64   `json:"score"`
	Keywords    []string  `json:"keywords,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	ModelName   string    `json:"model_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateEntryResponse is returned from the write path. The job receipt only
// acknowledges queue admission; it carries no completion promise.
type CreateEntryResponse struct {
	Entry EntryResponse `json:"entry"`
	Job   queue.Receipt `json:"job"`
}

// GetEntryResponse is returned from the read path. Analysis is null until
// the background job completes.
type GetEntryResponse struct {
	Entry    EntryResponse     `json:"entry"`
	Analysis *AnalysisResponse `json:"analysis,omitempty"`
}

// entryToResponse converts a domain.Entry to an EntryResponse.
func entryToResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		Text:      entry.Text,
		Mood:      entry.Mood,
		Status:    string(entry.Status),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// analysisToResponse converts a domain.Analysis to an AnalysisResponse.
func analysisToResponse(a *domain.Analysis) *AnalysisResponse {
	if a == nil {
		return nil
	}
	return &AnalysisResponse{
		Sentiment:   a.Sentiment,
		Score:       a.Score,
		Keywords:    a.Keywords,
		Suggestions: a.Suggestions,
		ModelName:   a.ModelName,
		CreatedAt:   a.CreatedAt,
	}
}
