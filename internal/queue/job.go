package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a job.
type Status string

// Possible job status values. StatusCompleted and StatusFailed are terminal:
// once a job reaches either, the queue drops it and no further transitions
// occur.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusRetry      Status = "retry"
	StatusFailed     Status = "failed"
)

// Job is one schedulable unit of asynchronous work. Its identity is fixed at
// enqueue time; status, attempts and the last error message are mutated only
// by the scheduler while it holds the queue lock.
type Job struct {
	// ID is an opaque identifier used for tracing and introspection only.
	// Callers never look jobs up by ID.
	ID string

	// Type selects which registered worker handles this job. It must match a
	// registered worker at dispatch time, not at enqueue time.
	Type string

	// Payload is passed verbatim to the worker. The queue never inspects it.
	Payload any

	// Attempts counts dispatch attempts so far. It is incremented immediately
	// before each invocation, so the first attempt makes it 1.
	Attempts int

	// MaxRetries is the total attempt budget for this job.
	MaxRetries int

	// Status is the job's current lifecycle state.
	Status Status

	// Err holds the most recent failure message. It is cleared on success and
	// retained after terminal failure.
	Err string

	// CreatedAt is the enqueue timestamp.
	CreatedAt time.Time
}

// newJob creates a queued job with a freshly assigned ID.
func newJob(jobType string, payload any, maxRetries int) *Job {
	return &Job{
		ID:         newJobID(jobType),
		Type:       jobType,
		Payload:    payload,
		MaxRetries: maxRetries,
		Status:     StatusQueued,
		CreatedAt:  time.Now().UTC(),
	}
}

// newJobID builds an opaque job identifier from the job type, the current
// time, and a short random suffix. The timestamp keeps IDs roughly sortable
// in logs; the suffix keeps them unique within a millisecond.
func newJobID(jobType string) string {
	return fmt.Sprintf("%s-%d-%s", jobType, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Snapshot is a read-only view of a pending job, exposed through Stats for
// diagnostics. Payloads are deliberately omitted.
type Snapshot struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Status    Status    `json:"status"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// snapshot copies the job's introspectable fields. Callers must hold the
// queue lock.
func (j *Job) snapshot() Snapshot {
	return Snapshot{
		ID:        j.ID,
		Type:      j.Type,
		Status:    j.Status,
		Attempts:  j.Attempts,
		CreatedAt: j.CreatedAt,
	}
}
