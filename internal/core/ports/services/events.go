package services

import "context"

// EventPublisher publishes domain events to an external broker.
// Publishing is best-effort: callers log failures and move on, they never let
// a broker outage fail the primary operation.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}
