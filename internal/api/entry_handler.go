package api

import (
	"net/http"

	"github.com/MaharajTanim/apricity/internal/api/shared"
	"github.com/MaharajTanim/apricity/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EntryHandler handles journal entry HTTP requests.
type EntryHandler struct {
	entryService service.EntryService
	validator    *validator.Validate
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		validator:    validator.New(),
	}
}

// CreateEntry handles POST /api/entries requests. It responds 202 Accepted:
// the entry is saved with pending status and analysis happens asynchronously.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entry, receipt, err := h.entryService.CreateEntryAndEnqueueAnalysis(
		r.Context(), userID, req.Text, req.Mood)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateEntryResponse{
		Entry: entryToResponse(entry),
		Job:   receipt,
	})
}

// GetEntry handles GET /api/entries/{id} requests. The entry status tells
// the client whether analysis is still pending, and the analysis field is
// populated once the background job has completed.
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, analysisResult, err := h.entryService.GetEntryWithAnalysis(r.Context(), entryID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GetEntryResponse{
		Entry:    entryToResponse(entry),
		Analysis: analysisToResponse(analysisResult),
	})
}
