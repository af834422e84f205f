// Package queue implements the in-process job queue that decouples the
// synchronous write path (saving a journal entry) from slow background work
// (sending entry text to the analysis service). It is a volatile,
// single-process, at-most-once-with-retries queue: jobs live only in memory,
// exactly one job is in flight at a time, and failed jobs are retried after a
// fixed delay until their attempt budget is exhausted.
package queue
