package domain

// PostRecord is the cached annotation state for a single post. Either
// field may be unset; a present value is always a full, previously
// accepted result; partial or in-progress state is never persisted.
type PostRecord struct {
	// Tags is the classification result: distinct tag strings,
	// lexicographically sorted, case-sensitive. Nil when the post has
	// not been classified yet.
	Tags []string `json:"tags,omitempty"`

	// Summary is opaque markdown produced by summarization. Empty when
	// the post has not been summarized yet.
	Summary string `json:"summary,omitempty"`
}

// HasClassification reports whether a classification result is present.
func (r PostRecord) HasClassification() bool {
	return r.Tags != nil
}

// HasSummary reports whether a summary is present.
func (r PostRecord) HasSummary() bool {
	return r.Summary != ""
}

// CommentRecord is the cached annotation state for a comment thread.
type CommentRecord struct {
	// Summary is opaque markdown produced by summarization.
	Summary string `json:"summary,omitempty"`
}

// HasSummary reports whether a summary is present.
func (r CommentRecord) HasSummary() bool {
	return r.Summary != ""
}
