package analysis

import (
	"context"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/google/uuid"
)

// Analyzer defines the interface for analyzing journal entry text.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
//
// Implementations must be safe for repeated invocation with the same input:
// the background queue retries failed jobs, and each retry calls Analyze
// again with the same entry text.
type Analyzer interface {
	// Analyze produces a sentiment analysis for the given entry text.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - entryID: The UUID of the journal entry being analyzed
	//   - text: The content of the entry to analyze
	//
	// Returns:
	//   - A domain.Analysis describing sentiment, score, keywords and
	//     suggestions for the entry
	//   - An error if analysis fails (see errors.go for specific types)
	Analyze(ctx context.Context, entryID uuid.UUID, text string) (*domain.Analysis, error)
}
