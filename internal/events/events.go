// Package events carries discovery notifications from whatever observes
// the live document into the pipeline, so the core never assumes a
// specific observation API.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkarren/feedlens/internal/domain"
)

// Discovery event types
const (
	// TypeItemDiscovered is emitted for a single newly observed item.
	TypeItemDiscovered = "item_discovered"

	// TypeBatchDiscovered is emitted for a newly observed subtree of
	// items (e.g. a page of posts arriving at once).
	TypeBatchDiscovered = "batch_discovered"
)

// DiscoveryEvent announces one or more newly observed content items.
// A single item and a batch are carried uniformly: handlers always
// receive a slice.
type DiscoveryEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID

	// Type is TypeItemDiscovered or TypeBatchDiscovered.
	Type string

	// Items holds the discovered items, already validated into their
	// concrete variants at the discovery boundary.
	Items []domain.ContentItem

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time
}

// NewItemEvent creates a DiscoveryEvent for a single item.
func NewItemEvent(item domain.ContentItem) *DiscoveryEvent {
	return &DiscoveryEvent{
		ID:        uuid.New(),
		Type:      TypeItemDiscovered,
		Items:     []domain.ContentItem{item},
		CreatedAt: time.Now().UTC(),
	}
}

// NewBatchEvent creates a DiscoveryEvent for a batch of items.
func NewBatchEvent(items []domain.ContentItem) *DiscoveryEvent {
	return &DiscoveryEvent{
		ID:        uuid.New(),
		Type:      TypeBatchDiscovered,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
}

// Handler defines an interface for components that process discovery
// events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *DiscoveryEvent) error
}

// Emitter defines an interface for components that publish discovery
// events, decoupling the observer from its consumers.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *DiscoveryEvent) error
}
