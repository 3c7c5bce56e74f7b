package ports

import "context"

// EventPublisher fans audit events out to external consumers. Publishing is
// best-effort; the audit row in the database is the source of truth.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
	Close() error
}
