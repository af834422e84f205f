package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Queue is the public entry point for the background pipeline. It combines
// worker registration, enqueuing, and introspection over a single-slot
// scheduler: at most one job is ever in flight, and processing never blocks
// the goroutine that enqueued the work.
//
// Construct queues explicitly with New and pass them to whatever needs them.
// There is no package-level instance.
type Queue struct {
	mu         sync.Mutex
	cfg        Config
	registry   *workerRegistry
	pending    []*Job
	processing bool

	// baseCtx is handed to workers. In-flight work is never cancelled; the
	// queue's lifetime is the process lifetime.
	baseCtx context.Context

	logger *slog.Logger

	// errHandler is called after a job exhausts its attempt budget. It is a
	// diagnostics side channel, not a delivery guarantee: enqueuing callers
	// still get no signal on terminal failure.
	errHandler func(job Snapshot, err error)
}

// New creates a queue with the given configuration. Zero or negative config
// values fall back to the defaults. If logger is nil, slog.Default is used.
func New(cfg Config, logger *slog.Logger) *Queue {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Queue{
		cfg:      cfg,
		registry: newWorkerRegistry(),
		baseCtx:  context.Background(),
		logger:   logger.With(slog.String("component", "queue")),
	}
}

// SetErrorHandler installs a hook invoked whenever a job reaches terminal
// failure. The default handler only logs. The hook runs on the scheduler
// goroutine, so it should return quickly.
func (q *Queue) SetErrorHandler(handler func(job Snapshot, err error)) {
	q.mu.Lock()
	q.errHandler = handler
	q.mu.Unlock()
}

// Register stores w as the worker for jobType, silently replacing any prior
// registration. Jobs may be enqueued before their worker exists; they fail
// with ErrNoWorker only if the type is still unregistered when they reach the
// front of the queue.
func (q *Queue) Register(jobType string, w Worker) {
	q.mu.Lock()
	q.registry.register(jobType, w)
	q.mu.Unlock()

	q.logger.Debug("worker registered", slog.String("job_type", jobType))
}

// Receipt acknowledges an enqueued job.
type Receipt struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	// QueuePosition is the 1-based length of the pending queue immediately
	// after insertion. It is an approximate hint only: retried jobs re-enter
	// at the tail, so it does not promise eventual dispatch order.
	QueuePosition int `json:"queue_position"`
}

// Enqueue appends a job to the queue and triggers the scheduler if it is
// idle. It is synchronous, never fails, and returns before the job's worker
// runs. The receipt is a handle, not a future: the queue reports neither
// eventual success nor terminal failure back to the caller. Callers that need
// the outcome must poll state the worker itself persists.
func (q *Queue) Enqueue(jobType string, payload any, opts ...EnqueueOption) Receipt {
	o := enqueueOptions{maxRetries: q.cfg.MaxRetries}
	for _, opt := range opts {
		opt(&o)
	}

	job := newJob(jobType, payload, o.maxRetries)

	q.mu.Lock()
	q.pending = append(q.pending, job)
	position := len(q.pending)
	q.mu.Unlock()

	q.logger.Debug("job enqueued",
		slog.String("job_id", job.ID),
		slog.String("job_type", job.Type),
		slog.Int("queue_position", position),
		slog.Int("max_retries", job.MaxRetries))

	q.dispatch()

	return Receipt{ID: job.ID, Status: StatusQueued, QueuePosition: position}
}

// Stats is a point-in-time snapshot of queue state for diagnostics.
type Stats struct {
	QueueSize         int        `json:"queue_size"`
	Processing        bool       `json:"processing"`
	RegisteredWorkers []string   `json:"registered_workers"`
	Jobs              []Snapshot `json:"jobs"`
}

// Stats returns a snapshot of the pending queue. The in-flight job, if any,
// has already left the queue and appears only through the Processing flag.
// Jobs waiting out a retry delay are likewise absent until their timer fires.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]Snapshot, len(q.pending))
	for i, job := range q.pending {
		jobs[i] = job.snapshot()
	}

	return Stats{
		QueueSize:         len(q.pending),
		Processing:        q.processing,
		RegisteredWorkers: q.registry.types(),
		Jobs:              jobs,
	}
}

// Clear drops every pending job and returns how many were discarded. It is
// best-effort: the in-flight job keeps running, and a job already waiting on
// its retry timer will still re-enter the queue when the timer fires.
func (q *Queue) Clear() int {
	q.mu.Lock()
	dropped := len(q.pending)
	q.pending = nil
	q.mu.Unlock()

	if dropped > 0 {
		q.logger.Info("queue cleared", slog.Int("dropped", dropped))
	}
	return dropped
}

// dispatch claims the single worker slot and starts the head job on its own
// goroutine. It is an idempotent no-op while a job is in flight or when
// nothing is pending, so it is safe to trigger from anywhere.
func (q *Queue) dispatch() {
	q.mu.Lock()
	if q.processing || len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}

	job := q.pending[0]
	q.pending = q.pending[1:]
	job.Status = StatusProcessing
	job.Attempts++
	q.processing = true
	worker, registered := q.registry.lookup(job.Type)
	q.mu.Unlock()

	go q.run(job, worker, registered)
}

// run executes one dispatch attempt and settles its outcome: completed jobs
// are dropped, failures either schedule a retry or exhaust the budget and are
// dropped as terminally failed. Either way the scheduler is re-triggered for
// the next pending job.
func (q *Queue) run(job *Job, worker Worker, registered bool) {
	logger := q.logger.With(
		slog.String("job_id", job.ID),
		slog.String("job_type", job.Type),
		slog.Int("attempt", job.Attempts))

	var err error
	if !registered {
		err = fmt.Errorf("%w: %q", ErrNoWorker, job.Type)
	} else {
		err = q.invoke(job, worker)
	}

	q.mu.Lock()
	q.processing = false

	switch {
	case err == nil:
		job.Status = StatusCompleted
		job.Err = ""
		q.mu.Unlock()

		logger.Info("job completed")

	case job.Attempts < job.MaxRetries:
		job.Status = StatusRetry
		job.Err = err.Error()
		delay := q.cfg.RetryDelay
		q.mu.Unlock()

		logger.Warn("job failed, retry scheduled",
			slog.String("error", err.Error()),
			slog.Duration("retry_delay", delay),
			slog.Int("max_retries", job.MaxRetries))

		time.AfterFunc(delay, func() { q.requeue(job) })

	default:
		job.Status = StatusFailed
		job.Err = err.Error()
		handler := q.errHandler
		snapshot := job.snapshot()
		q.mu.Unlock()

		logger.Error("job failed permanently, dropping",
			slog.String("error", err.Error()),
			slog.Int("max_retries", job.MaxRetries))

		if handler != nil {
			handler(snapshot, err)
		}
	}

	q.dispatch()
}

// invoke runs the worker, converting panics into attempt errors so a
// misbehaving worker cannot take down the host process.
func (q *Queue) invoke(job *Job, worker Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panicked: %v", r)
		}
	}()
	return worker.Process(q.baseCtx, job.Payload)
}

// requeue returns a retried job to the tail of the pending queue once its
// delay has elapsed. The job re-enters behind anything enqueued in the
// meantime, so a retried job loses its original position.
func (q *Queue) requeue(job *Job) {
	q.mu.Lock()
	job.Status = StatusQueued
	q.pending = append(q.pending, job)
	attempts := job.Attempts
	q.mu.Unlock()

	// Attempts is captured under the lock: once the job is back in pending,
	// a dispatch triggered by a concurrent enqueue may already be mutating it.
	q.logger.Debug("retried job requeued",
		slog.String("job_id", job.ID),
		slog.String("job_type", job.Type),
		slog.Int("attempts", attempts))

	q.dispatch()
}
