package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/MaharajTanim/apricity/internal/queue"
	"github.com/MaharajTanim/apricity/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEntryService implements service.EntryService with overridable functions.
type mockEntryService struct {
	createFn func(ctx context.Context, userID uuid.UUID, text, mood string) (*domain.Entry, queue.Receipt, error)
	getFn    func(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error)
	getAllFn func(ctx context.Context, entryID uuid.UUID) (*domain.Entry, *domain.Analysis, error)
}

func (m *mockEntryService) CreateEntryAndEnqueueAnalysis(
	ctx context.Context,
	userID uuid.UUID,
	text, mood string,
) (*domain.Entry, queue.Receipt, error) {
	return m.createFn(ctx, userID, text, mood)
}

func (m *mockEntryService) GetEntry(
	ctx context.Context,
	entryID uuid.UUID,
) (*domain.Entry, error) {
	return m.getFn(ctx, entryID)
}

func (m *mockEntryService) GetEntryWithAnalysis(
	ctx context.Context,
	entryID uuid.UUID,
) (*domain.Entry, *domain.Analysis, error) {
	return m.getAllFn(ctx, entryID)
}

func newTestRouter(h *EntryHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/entries", h.CreateEntry)
	r.Get("/api/entries/{id}", h.GetEntry)
	return r
}

func TestCreateEntryAccepted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entry, err := domain.NewEntry(userID, "Quiet morning, feeling okay.", "okay")
	require.NoError(t, err)

	svc := &mockEntryService{
		createFn: func(ctx context.Context, gotUserID uuid.UUID, text, mood string) (*domain.Entry, queue.Receipt, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, "Quiet morning, feeling okay.", text)
			assert.Equal(t, "okay", mood)
			return entry, queue.Receipt{
				ID:            "ml-analysis-1700000000000-abcd1234",
				Status:        queue.StatusQueued,
				QueuePosition: 1,
			}, nil
		},
	}

	body, err := json.Marshal(CreateEntryRequest{
		UserID: userID.String(),
		Text:   "Quiet morning, feeling okay.",
		Mood:   "okay",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp CreateEntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, entry.ID.String(), resp.Entry.ID)
	assert.Equal(t, string(domain.EntryStatusPending), resp.Entry.Status)
	assert.Equal(t, "ml-analysis-1700000000000-abcd1234", resp.Job.ID)
	assert.Equal(t, 1, resp.Job.QueuePosition)
}

func TestCreateEntryRejectsBadRequests(t *testing.T) {
	t.Parallel()

	svc := &mockEntryService{
		createFn: func(ctx context.Context, userID uuid.UUID, text, mood string) (*domain.Entry, queue.Receipt, error) {
			t.Fatal("service must not be called for invalid requests")
			return nil, queue.Receipt{}, nil
		},
	}
	router := newTestRouter(NewEntryHandler(svc))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user_id": `},
		{"unknown field", `{"user_id":"` + uuid.NewString() + `","text":"hi","extra":true}`},
		{"missing text", `{"user_id":"` + uuid.NewString() + `"}`},
		{"invalid user id", `{"user_id":"not-a-uuid","text":"hi"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(
				http.MethodPost, "/api/entries", bytes.NewReader([]byte(tc.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateEntryServiceError(t *testing.T) {
	t.Parallel()

	svc := &mockEntryService{
		createFn: func(ctx context.Context, userID uuid.UUID, text, mood string) (*domain.Entry, queue.Receipt, error) {
			return nil, queue.Receipt{}, service.NewEntryServiceError(
				"create_entry", "failed to save entry to database",
				assert.AnError)
		},
	}

	body := `{"user_id":"` + uuid.NewString() + `","text":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/entries", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestGetEntryWithAnalysis(t *testing.T) {
	t.Parallel()

	entry, err := domain.NewEntry(uuid.New(), "text", "")
	require.NoError(t, err)
	require.NoError(t, entry.UpdateStatus(domain.EntryStatusCompleted))

	stored, err := domain.NewAnalysis(entry.ID, "positive", 0.7)
	require.NoError(t, err)
	stored.Keywords = []string{"gratitude"}
	stored.ModelName = "gemini-2.0-flash"

	svc := &mockEntryService{
		getAllFn: func(ctx context.Context, entryID uuid.UUID) (*domain.Entry, *domain.Analysis, error) {
			assert.Equal(t, entry.ID, entryID)
			return entry, stored, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/"+entry.ID.String(), nil)
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GetEntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, string(domain.EntryStatusCompleted), resp.Entry.Status)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "positive", resp.Analysis.Sentiment)
	assert.InDelta(t, 0.7, resp.Analysis.Score, 1e-9)
	assert.Equal(t, []string{"gratitude"}, resp.Analysis.Keywords)
}

func TestGetEntryAnalysisPending(t *testing.T) {
	t.Parallel()

	entry, err := domain.NewEntry(uuid.New(), "text", "")
	require.NoError(t, err)

	svc := &mockEntryService{
		getAllFn: func(ctx context.Context, entryID uuid.UUID) (*domain.Entry, *domain.Analysis, error) {
			return entry, nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/"+entry.ID.String(), nil)
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GetEntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Nil(t, resp.Analysis)
	assert.Equal(t, string(domain.EntryStatusPending), resp.Entry.Status)
}

func TestGetEntryNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockEntryService{
		getAllFn: func(ctx context.Context, entryID uuid.UUID) (*domain.Entry, *domain.Analysis, error) {
			return nil, nil, service.ErrEntryNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEntryInvalidID(t *testing.T) {
	t.Parallel()

	svc := &mockEntryService{}
	req := httptest.NewRequest(http.MethodGet, "/api/entries/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newTestRouter(NewEntryHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
