package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAnalysis(t *testing.T) {
	t.Parallel()
	entryID := uuid.New()

	analysis, err := NewAnalysis(entryID, "positive", 0.8)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if analysis.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if analysis.EntryID != entryID {
		t.Errorf("Expected entry ID %s, got %s", entryID, analysis.EntryID)
	}

	if analysis.Sentiment != "positive" {
		t.Errorf("Expected sentiment positive, got %s", analysis.Sentiment)
	}

	if analysis.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid entry ID
	_, err = NewAnalysis(uuid.Nil, "positive", 0.8)
	if err != ErrEmptyAnalysisEntryID {
		t.Errorf("Expected error %v, got %v", ErrEmptyAnalysisEntryID, err)
	}

	// Test empty sentiment
	_, err = NewAnalysis(entryID, "", 0.8)
	if err != ErrEmptySentiment {
		t.Errorf("Expected error %v, got %v", ErrEmptySentiment, err)
	}

	// Test out-of-range score
	_, err = NewAnalysis(entryID, "positive", 1.5)
	if err != ErrScoreOutOfRange {
		t.Errorf("Expected error %v, got %v", ErrScoreOutOfRange, err)
	}
}
