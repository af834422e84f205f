// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive dependencies through constructor injection and translate
// store-level errors into application-level errors for the API layer. The
// entry service also owns the write path's hand-off to the background queue:
// saving an entry and enqueueing its analysis job are a single use case.
package service
