// Package generation turns content items into prompts, runs them
// through the inference client and recovers structured results from the
// raw replies. It sits between the pipeline and the service boundary,
// so nothing above it handles raw model output.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkarren/feedlens/internal/domain"
)

// ChatClient is the single request/response exchange the annotator
// needs from the inference boundary.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Annotator produces classifications and summaries for content items.
type Annotator struct {
	client ChatClient
	logger *slog.Logger
}

// NewAnnotator creates an Annotator backed by the given chat client.
func NewAnnotator(client ChatClient, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Annotator{
		client: client,
		logger: logger.With(slog.String("component", "annotator")),
	}
}

// ClassifyPost classifies a post into a normalized tag list.
// Returns ErrNotClassifiable when no prompt can be built, and wraps
// transport failures in ErrGenerationFailed. A reply the parser cannot
// recover tags from yields an empty list, not an error.
func (a *Annotator) ClassifyPost(ctx context.Context, post *domain.Post) ([]string, error) {
	prompt, ok := BuildPostPrompt(post)
	if !ok {
		return nil, ErrNotClassifiable
	}

	reply, err := a.client.Chat(ctx, classifySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	tags := domain.NormalizeTags(ParseTags(reply))
	a.logger.Debug("classified post",
		slog.String("post_id", post.ID),
		slog.Int("tag_count", len(tags)))

	return tags, nil
}

// SummarizeThread summarizes a comment tree, submitting the redacted
// payload with the thread title and subreddit attached to the root.
func (a *Annotator) SummarizeThread(
	ctx context.Context,
	root *domain.Comment,
	title, subreddit string,
) (string, error) {
	payload := BuildThreadPayload(root, title, subreddit)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode thread payload: %w", err)
	}

	reply, err := a.client.Chat(ctx, summarizeSystemPrompt, string(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return strings.TrimSpace(reply), nil
}
