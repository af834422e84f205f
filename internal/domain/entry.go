package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EntryStatus represents the analysis state of a journal entry.
type EntryStatus string

// Possible entry status values. The status is the side channel through which
// callers observe the background pipeline: the queue itself never reports
// outcomes, so clients poll the entry until it reaches completed or failed.
const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusProcessing EntryStatus = "processing"
	EntryStatusCompleted  EntryStatus = "completed"
	EntryStatusFailed     EntryStatus = "failed"
)

// Common validation errors for Entry
var (
	ErrEmptyEntryID      = errors.New("entry ID cannot be empty")
	ErrEmptyEntryUserID  = errors.New("entry user ID cannot be empty")
	ErrEmptyEntryText    = errors.New("entry text cannot be empty")
	ErrInvalidEntryState = errors.New("invalid entry status")
)

// Entry represents a journal entry written by a user. It tracks the original
// text, an optional self-reported mood, and the state of the background
// analysis.
type Entry struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Text      string      `json:"text"`
	Mood      string      `json:"mood,omitempty"`
	Status    EntryStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEntry creates a new Entry with the given user ID, text and mood.
// It generates a new UUID for the entry ID, sets the status to pending,
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewEntry(userID uuid.UUID, text, mood string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Mood:      mood,
		Status:    EntryStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the Entry has valid data.
// Returns an error if any field fails validation.
func (e *Entry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEntryUserID
	}

	if e.Text == "" {
		return ErrEmptyEntryText
	}

	if !isValidEntryStatus(e.Status) {
		return ErrInvalidEntryState
	}

	return nil
}

// UpdateStatus updates the entry's status and the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (e *Entry) UpdateStatus(status EntryStatus) error {
	if !isValidEntryStatus(status) {
		return ErrInvalidEntryState
	}

	e.Status = status
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidEntryStatus checks if the given status is a valid EntryStatus.
func isValidEntryStatus(status EntryStatus) bool {
	switch status {
	case EntryStatusPending, EntryStatusProcessing,
		EntryStatusCompleted, EntryStatusFailed:
		return true
	default:
		return false
	}
}
