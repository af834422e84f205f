// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts HTTP concerns to the application
// services: entry writes return 202 Accepted because analysis runs on the
// background queue, and reads expose the entry status clients poll for the
// outcome.
package api
