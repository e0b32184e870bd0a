package model

import "context"

// Writer defines a generic interface for delivering a finished report to a
// destination (file, database, message bus).
type Writer interface {
	// Name identifies the writer in logs.
	Name() string

	// Write delivers the report.
	Write(ctx context.Context, report *Report) error

	// Close releases any connection held by the writer.
	Close() error
}
