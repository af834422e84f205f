// Package worker contains the background job handlers that the in-process
// queue dispatches. Each worker owns the full lifecycle of one job type,
// including the status updates that make the outcome observable to API
// callers, since the queue itself never reports results.
package worker
