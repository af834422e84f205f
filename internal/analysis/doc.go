// Package analysis defines the boundary between the application core and the
// external service that analyzes journal entry text. It contains only the
// Analyzer interface and the error taxonomy; concrete implementations live
// under internal/platform.
package analysis
