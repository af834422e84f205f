package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaharajTanim/apricity/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockQueue struct {
	stats   queue.Stats
	cleared int
}

func (m *mockQueue) Stats() queue.Stats { return m.stats }
func (m *mockQueue) Clear() int         { return m.cleared }

func TestGetQueueStats(t *testing.T) {
	t.Parallel()

	q := &mockQueue{
		stats: queue.Stats{
			QueueSize:         2,
			Processing:        true,
			RegisteredWorkers: []string{"ml-analysis"},
			Jobs: []queue.Snapshot{
				{ID: "ml-analysis-1700000000000-abcd1234", Type: "ml-analysis", Status: queue.StatusQueued},
				{ID: "ml-analysis-1700000000001-efgh5678", Type: "ml-analysis", Status: queue.StatusQueued},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/queue/stats", nil)
	rec := httptest.NewRecorder()
	http.HandlerFunc(NewQueueHandler(q).GetStats).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp queue.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.QueueSize)
	assert.True(t, resp.Processing)
	assert.Equal(t, []string{"ml-analysis"}, resp.RegisteredWorkers)
	assert.Len(t, resp.Jobs, 2)
}

func TestClearQueue(t *testing.T) {
	t.Parallel()

	q := &mockQueue{cleared: 3}

	req := httptest.NewRequest(http.MethodDelete, "/api/queue/pending", nil)
	rec := httptest.NewRecorder()
	http.HandlerFunc(NewQueueHandler(q).Clear).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClearResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Cleared)
}
