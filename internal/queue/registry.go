package queue

import (
	"context"
	"errors"
	"sort"
)

// ErrNoWorker is returned as the attempt error when a job reaches the front
// of the queue and no worker is registered for its type. It is subject to the
// same retry policy as any other worker failure.
var ErrNoWorker = errors.New("no worker registered for job type")

// Worker processes jobs of a single type. Implementations must be safe to
// re-invoke with the same payload: the queue retries failed jobs without any
// deduplication.
type Worker interface {
	// Process performs the job's work. Returning a non-nil error marks the
	// attempt as failed.
	Process(ctx context.Context, payload any) error
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx context.Context, payload any) error

// Process implements Worker.
func (f WorkerFunc) Process(ctx context.Context, payload any) error {
	return f(ctx, payload)
}

// workerRegistry maps job types to workers. Registration is last-write-wins;
// a lookup miss only surfaces when a job of that type is dispatched. Access
// is guarded by the owning queue's lock.
type workerRegistry struct {
	workers map[string]Worker
}

func newWorkerRegistry() *workerRegistry {
	return &workerRegistry{workers: make(map[string]Worker)}
}

func (r *workerRegistry) register(jobType string, w Worker) {
	r.workers[jobType] = w
}

func (r *workerRegistry) lookup(jobType string) (Worker, bool) {
	w, ok := r.workers[jobType]
	return w, ok
}

// types returns the registered job types in sorted order, for stable
// introspection output.
func (r *workerRegistry) types() []string {
	types := make([]string, 0, len(r.workers))
	for t := range r.workers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
