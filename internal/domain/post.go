package domain

import "errors"

// Common validation errors for Post
var (
	ErrEmptyPostTitle = errors.New("post title cannot be empty")
)

// Post represents a feed post discovered for annotation. The ID is the
// stable external key; it may be empty for posts observed without an
// identifier, which makes them processable but not cacheable.
type Post struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit,omitempty"`
	Flair     string `json:"flair,omitempty"`
	NSFW      bool   `json:"nsfw,omitempty"`
	Spoiler   bool   `json:"spoiler,omitempty"`
	Adult     bool   `json:"adult,omitempty"`
}

// NewPost creates a Post from discovery attributes, validating at the
// discovery boundary so downstream code never re-checks shape.
// Returns an error if validation fails.
func NewPost(id, title, subreddit string) (*Post, error) {
	post := &Post{
		ID:        id,
		Title:     title,
		Subreddit: subreddit,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Title is the single classification gate: a post without one is not
// classifiable.
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrEmptyPostTitle
	}
	return nil
}

// Kind returns the variant discriminator.
func (p *Post) Kind() ItemKind {
	return ItemKindPost
}

// Key returns the cache key for this post. Empty means uncacheable.
func (p *Post) Key() string {
	return p.ID
}

// Ensure Post implements ContentItem
var _ ContentItem = (*Post)(nil)
