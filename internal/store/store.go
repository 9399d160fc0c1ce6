// Package store defines the annotation cache contract shared by the
// SQLite and in-memory implementations.
package store

import (
	"context"

	"github.com/mkarren/feedlens/internal/domain"
)

// AnnotationStore is the durable key→record cache for annotation
// results. It exposes two independent namespaces, one per content kind.
//
// Lookups treat absence as normal control flow: a missing key yields
// (zero value, false, nil), never an error. Writes use merge semantics
// at the record level: setting a post's summary must not clobber an
// existing classification, and vice versa. Operations are independent
// per key; there are no cross-key transactions.
type AnnotationStore interface {
	// GetPost returns the cached record for a post, if present.
	GetPost(ctx context.Context, id string) (domain.PostRecord, bool, error)

	// PutPostClassification stores a post's tag list, preserving any
	// existing summary. Tags are expected to be normalized already.
	PutPostClassification(ctx context.Context, id string, tags []string) error

	// PutPostSummary stores a post's summary, preserving any existing
	// classification.
	PutPostSummary(ctx context.Context, id string, summary string) error

	// GetComment returns the cached record for a comment thread, if present.
	GetComment(ctx context.Context, id string) (domain.CommentRecord, bool, error)

	// PutCommentSummary stores a comment thread's summary.
	PutCommentSummary(ctx context.Context, id string, summary string) error

	// Close releases the store's resources.
	Close() error
}
