package pipeline

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/mkarren/feedlens/internal/domain"
)

// Sink receives successful annotation results for display. The
// orchestrator guarantees each result is delivered at most once per
// item; implementations must additionally be idempotent, since a
// cached result may be re-rendered on a later session over the same
// content.
type Sink interface {
	// RenderTags paints a post's tag list.
	RenderTags(item domain.ContentItem, tags []string) error

	// RenderSummary paints a summary for a post or comment thread.
	RenderSummary(item domain.ContentItem, summary string) error
}

// JSONSink writes annotations as JSON lines to a writer. It stands in
// for the visual rendering layer, which is outside this process.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSink creates a sink writing one JSON object per annotation.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

type renderedAnnotation struct {
	Kind    domain.ItemKind `json:"kind"`
	Key     string          `json:"key,omitempty"`
	Tags    []string        `json:"tags,omitempty"`
	Summary string          `json:"summary,omitempty"`
}

// RenderTags implements Sink.RenderTags.
func (s *JSONSink) RenderTags(item domain.ContentItem, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(renderedAnnotation{
		Kind: item.Kind(),
		Key:  item.Key(),
		Tags: tags,
	})
}

// RenderSummary implements Sink.RenderSummary.
func (s *JSONSink) RenderSummary(item domain.ContentItem, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(renderedAnnotation{
		Kind:    item.Kind(),
		Key:     item.Key(),
		Summary: summary,
	})
}

// Ensure JSONSink implements Sink
var _ Sink = (*JSONSink)(nil)
