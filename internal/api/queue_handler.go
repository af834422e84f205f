package api

import (
	"net/http"

	"github.com/MaharajTanim/apricity/internal/api/shared"
	"github.com/MaharajTanim/apricity/internal/queue"
)

// QueueIntrospector is the read/maintenance surface of the queue exposed
// over HTTP.
type QueueIntrospector interface {
	Stats() queue.Stats
	Clear() int
}

// QueueHandler exposes queue introspection endpoints, intended for
// operational debugging rather than client use.
type QueueHandler struct {
	queue QueueIntrospector
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(q QueueIntrospector) *QueueHandler {
	return &QueueHandler{queue: q}
}

// GetStats handles GET /api/queue/stats requests. The snapshot covers
// pending jobs only: the in-flight job appears through the processing flag
// and jobs waiting out a retry delay are absent until their timer fires.
func (h *QueueHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.queue.Stats())
}

// ClearResponse reports how many pending jobs a clear removed.
type ClearResponse struct {
	Cleared int `json:"cleared"`
}

// Clear handles DELETE /api/queue/pending requests. It drops pending jobs
// but cannot recall the in-flight job or retries whose timers are already
// armed.
func (h *QueueHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cleared := h.queue.Clear()
	shared.RespondWithJSON(w, r, http.StatusOK, ClearResponse{Cleared: cleared})
}
