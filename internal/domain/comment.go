package domain

import "errors"

// Common validation errors for Comment
var (
	ErrEmptyCommentBody = errors.New("comment body cannot be empty")
)

// Comment represents a node in a discovered comment tree. A comment
// exclusively owns its descendants: the Children slice is never shared
// between trees, so walking it needs no synchronization.
type Comment struct {
	ID       string     `json:"id,omitempty"`
	Author   string     `json:"author,omitempty"`
	Body     string     `json:"body"`
	Children []*Comment `json:"children,omitempty"`

	// ThreadTitle and ThreadSubreddit describe the page the thread was
	// discovered on. Discovery sets them on top-level comments only;
	// summarization injects them into the root of the redacted payload.
	ThreadTitle     string `json:"thread_title,omitempty"`
	ThreadSubreddit string `json:"thread_subreddit,omitempty"`
}

// NewComment creates a Comment from discovery attributes, validating at
// the discovery boundary. Returns an error if validation fails.
func NewComment(id, author, body string, children []*Comment) (*Comment, error) {
	comment := &Comment{
		ID:       id,
		Author:   author,
		Body:     body,
		Children: children,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.Body == "" {
		return ErrEmptyCommentBody
	}
	return nil
}

// Kind returns the variant discriminator.
func (c *Comment) Kind() ItemKind {
	return ItemKindComment
}

// Key returns the cache key for this comment. Empty means uncacheable.
func (c *Comment) Key() string {
	return c.ID
}

// DescendantCount returns the total number of transitive child nodes,
// not counting the receiver itself. Summarization policy is gated on
// this count: small threads are skipped, not failed.
func (c *Comment) DescendantCount() int {
	count := 0
	for _, child := range c.Children {
		count += 1 + child.DescendantCount()
	}
	return count
}

// Ensure Comment implements ContentItem
var _ ContentItem = (*Comment)(nil)
