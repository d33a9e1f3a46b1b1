// Package ports defines the interfaces between the application layer and
// infrastructure. Implementations live under infrastructure/.
package ports

import (
	"context"

	"nasab-backend/domain/events"
	"nasab-backend/domain/family"
)

// FamilySummary is the projection returned by repository listings.
type FamilySummary struct {
	ID         string `json:"id"`
	FamilyName string `json:"familyName"`
	RootID     string `json:"rootId,omitempty"`
	Members    int    `json:"members"`
}

// FamilyRepository persists whole family aggregates. Persistence is
// advisory: the in-memory graph is authoritative, and callers are expected
// to treat Save failures as a degraded local-only state rather than an
// operation failure.
type FamilyRepository interface {
	// Load returns the stored aggregate for the given family id.
	Load(ctx context.Context, familyID string) (*family.FamilyData, error)

	// Save writes the full aggregate, replacing any previous version.
	Save(ctx context.Context, data *family.FamilyData) error

	// List returns summaries of every stored family.
	List(ctx context.Context) ([]FamilySummary, error)
}

// EventPublisher delivers domain events to interested consumers.
// Publication is best-effort; failures must not block mutations.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache is a simple TTL cache used to memoize hierarchy projections.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context)
}

// MetricsRecorder records operational counters. Recording is best-effort.
type MetricsRecorder interface {
	IncrementCounter(ctx context.Context, name string, value float64)
	RecordGauge(ctx context.Context, name string, value float64)
}
