package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewEntry(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	text := "Today was a hard day but the evening walk helped."

	entry, err := NewEntry(userID, text, "tired")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if entry.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, entry.UserID)
	}

	if entry.Text != text {
		t.Errorf("Expected text %s, got %s", text, entry.Text)
	}

	if entry.Mood != "tired" {
		t.Errorf("Expected mood tired, got %s", entry.Mood)
	}

	if entry.Status != EntryStatusPending {
		t.Errorf("Expected status %s, got %s", EntryStatusPending, entry.Status)
	}

	if entry.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if entry.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid userID
	_, err = NewEntry(uuid.Nil, text, "")
	if err != ErrEmptyEntryUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyEntryUserID, err)
	}

	// Test invalid text
	_, err = NewEntry(userID, "", "")
	if err != ErrEmptyEntryText {
		t.Errorf("Expected error %v, got %v", ErrEmptyEntryText, err)
	}
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()
	validEntry := Entry{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Text:   "Test entry",
		Status: EntryStatusPending,
	}

	// Test valid entry
	if err := validEntry.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidEntry := validEntry
	invalidEntry.ID = uuid.Nil
	if err := invalidEntry.Validate(); err != ErrEmptyEntryID {
		t.Errorf("Expected error %v, got %v", ErrEmptyEntryID, err)
	}

	// Test invalid UserID
	invalidEntry = validEntry
	invalidEntry.UserID = uuid.Nil
	if err := invalidEntry.Validate(); err != ErrEmptyEntryUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyEntryUserID, err)
	}

	// Test invalid status
	invalidEntry = validEntry
	invalidEntry.Status = EntryStatus("bogus")
	if err := invalidEntry.Validate(); err != ErrInvalidEntryState {
		t.Errorf("Expected error %v, got %v", ErrInvalidEntryState, err)
	}
}

func TestEntryUpdateStatus(t *testing.T) {
	t.Parallel()
	entry, err := NewEntry(uuid.New(), "Some text", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := entry.UpdatedAt

	if err := entry.UpdateStatus(EntryStatusProcessing); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if entry.Status != EntryStatusProcessing {
		t.Errorf("Expected status %s, got %s", EntryStatusProcessing, entry.Status)
	}

	if entry.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	if err := entry.UpdateStatus(EntryStatus("bogus")); err != ErrInvalidEntryState {
		t.Errorf("Expected error %v, got %v", ErrInvalidEntryState, err)
	}
}
