package queue

import "time"

// Default queue-wide settings.
const (
	// DefaultMaxRetries is the attempt budget applied to jobs enqueued
	// without an explicit override.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed wait between a failed attempt and the
	// job's reappearance at the tail of the queue. The delay is constant
	// across attempts, not exponential.
	DefaultRetryDelay = 2 * time.Second
)

// Config holds queue-wide configuration.
type Config struct {
	// MaxRetries is the default attempt budget for enqueued jobs. Individual
	// jobs may override it with WithMaxRetries.
	MaxRetries int

	// RetryDelay is the fixed delay before a failed job re-enters the queue.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// EnqueueOption customizes a single job at enqueue time.
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	maxRetries int
}

// WithMaxRetries overrides the queue-wide attempt budget for one job.
// Values less than one are ignored and the queue default applies.
func WithMaxRetries(n int) EnqueueOption {
	return func(o *enqueueOptions) {
		if n > 0 {
			o.maxRetries = n
		}
	}
}
