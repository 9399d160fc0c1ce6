package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/feedlens/internal/domain"
)

// recordingHandler implements Handler for testing
type recordingHandler struct {
	events []*DiscoveryEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *DiscoveryEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewItemEvent(t *testing.T) {
	t.Parallel()
	post := &domain.Post{ID: "t3_a", Title: "hello"}
	event := NewItemEvent(post)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeItemDiscovered, event.Type)
	require.Len(t, event.Items, 1)
	assert.Equal(t, post, event.Items[0])
	assert.False(t, event.CreatedAt.IsZero())
}

func TestNewBatchEvent(t *testing.T) {
	t.Parallel()
	items := []domain.ContentItem{
		&domain.Post{ID: "t3_a", Title: "one"},
		&domain.Post{ID: "t3_b", Title: "two"},
	}
	event := NewBatchEvent(items)

	assert.Equal(t, TypeBatchDiscovered, event.Type)
	assert.Len(t, event.Items, 2)
}

func TestEmitEventDeliversToAllHandlers(t *testing.T) {
	t.Parallel()
	emitter := NewInMemoryEmitter(testLogger())
	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event := NewItemEvent(&domain.Post{ID: "t3_a", Title: "hello"})
	err := emitter.EmitEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestEmitEventContinuesPastFailingHandler(t *testing.T) {
	t.Parallel()
	emitter := NewInMemoryEmitter(testLogger())
	failing := &recordingHandler{err: errors.New("handler broke")}
	healthy := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(healthy)

	err := emitter.EmitEvent(context.Background(), NewItemEvent(&domain.Post{ID: "x", Title: "t"}))

	require.Error(t, err)
	assert.Len(t, healthy.events, 1, "later handlers still receive the event")
}

func TestEmitEventNoHandlers(t *testing.T) {
	t.Parallel()
	emitter := NewInMemoryEmitter(testLogger())
	err := emitter.EmitEvent(context.Background(), NewItemEvent(&domain.Post{ID: "x", Title: "t"}))
	assert.NoError(t, err)
}
