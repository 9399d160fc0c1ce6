package store

import (
	"context"
	"sync"

	"github.com/mkarren/feedlens/internal/domain"
)

// MemoryStore is a map-backed AnnotationStore used when no cache path
// is configured and throughout the test suite. Records do not survive a
// restart.
type MemoryStore struct {
	mu       sync.RWMutex
	posts    map[string]domain.PostRecord
	comments map[string]domain.CommentRecord
	closed   bool
}

// NewMemoryStore creates an empty in-memory annotation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:    make(map[string]domain.PostRecord),
		comments: make(map[string]domain.CommentRecord),
	}
}

// Ensure MemoryStore implements AnnotationStore
var _ AnnotationStore = (*MemoryStore)(nil)

// GetPost implements AnnotationStore.GetPost.
func (s *MemoryStore) GetPost(_ context.Context, id string) (domain.PostRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.posts[id]
	if id == "" || s.closed {
		return domain.PostRecord{}, false, nil
	}
	return rec, ok, nil
}

// PutPostClassification implements AnnotationStore.PutPostClassification.
func (s *MemoryStore) PutPostClassification(_ context.Context, id string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(id); err != nil {
		return err
	}

	rec := s.posts[id]
	rec.Tags = tags
	s.posts[id] = rec
	return nil
}

// PutPostSummary implements AnnotationStore.PutPostSummary.
func (s *MemoryStore) PutPostSummary(_ context.Context, id string, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(id); err != nil {
		return err
	}

	rec := s.posts[id]
	rec.Summary = summary
	s.posts[id] = rec
	return nil
}

// GetComment implements AnnotationStore.GetComment.
func (s *MemoryStore) GetComment(_ context.Context, id string) (domain.CommentRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.comments[id]
	if id == "" || s.closed {
		return domain.CommentRecord{}, false, nil
	}
	return rec, ok, nil
}

// PutCommentSummary implements AnnotationStore.PutCommentSummary.
func (s *MemoryStore) PutCommentSummary(_ context.Context, id string, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(id); err != nil {
		return err
	}

	s.comments[id] = domain.CommentRecord{Summary: summary}
	return nil
}

// Close implements AnnotationStore.Close.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) writable(id string) error {
	if s.closed {
		return ErrStoreClosed
	}
	if id == "" {
		return ErrEmptyKey
	}
	return nil
}
