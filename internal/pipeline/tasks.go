package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkarren/feedlens/internal/domain"
)

// Task kind identifiers
const (
	TaskKindClassification = "post_classification"
	TaskKindSummarization  = "thread_summarization"
)

// classifyTask annotates a single post with tags.
type classifyTask struct {
	id   uuid.UUID
	orch *Orchestrator
	post *domain.Post
}

func newClassifyTask(orch *Orchestrator, post *domain.Post) *classifyTask {
	return &classifyTask{id: uuid.New(), orch: orch, post: post}
}

// ID returns the task's unique identifier.
func (t *classifyTask) ID() uuid.UUID { return t.id }

// Kind returns the task kind identifier.
func (t *classifyTask) Kind() string { return TaskKindClassification }

// Execute runs classification for the post: inference, cache write,
// render. A failure marks the item Failed and is reported upward for
// logging; it is never retried.
func (t *classifyTask) Execute(ctx context.Context) error {
	o := t.orch

	tags, err := o.classifier.ClassifyPost(ctx, t.post)
	if err != nil {
		o.setStatus(t.post.Key(), StatusFailed)
		return fmt.Errorf("classification failed: %w", err)
	}

	o.writePostClassification(ctx, t.post, tags)

	if err := o.sink.RenderTags(t.post, tags); err != nil {
		o.setStatus(t.post.Key(), StatusFailed)
		return fmt.Errorf("render failed: %w", err)
	}

	o.setStatus(t.post.Key(), StatusRendered)
	return nil
}

// summarizeTask annotates a comment thread with a summary.
type summarizeTask struct {
	id   uuid.UUID
	orch *Orchestrator
	root *domain.Comment
}

func newSummarizeTask(orch *Orchestrator, root *domain.Comment) *summarizeTask {
	return &summarizeTask{id: uuid.New(), orch: orch, root: root}
}

// ID returns the task's unique identifier.
func (t *summarizeTask) ID() uuid.UUID { return t.id }

// Kind returns the task kind identifier.
func (t *summarizeTask) Kind() string { return TaskKindSummarization }

// Execute runs summarization for the thread.
func (t *summarizeTask) Execute(ctx context.Context) error {
	o := t.orch

	summary, err := o.summarizer.SummarizeThread(
		ctx, t.root, t.root.ThreadTitle, t.root.ThreadSubreddit)
	if err != nil {
		o.setStatus(t.root.Key(), StatusFailed)
		return fmt.Errorf("summarization failed: %w", err)
	}

	o.writeCommentSummary(ctx, t.root, summary)

	if err := o.sink.RenderSummary(t.root, summary); err != nil {
		o.setStatus(t.root.Key(), StatusFailed)
		return fmt.Errorf("render failed: %w", err)
	}

	o.setStatus(t.root.Key(), StatusRendered)
	return nil
}
