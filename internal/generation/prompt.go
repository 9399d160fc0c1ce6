package generation

import (
	"strings"

	"github.com/mkarren/feedlens/internal/domain"
)

// BuildPostPrompt converts a post's attributes into the classification
// user message. The markers are concatenated in fixed order (adult,
// NSFW, spoiler, subreddit, flair, title) so identical posts always
// produce identical prompts. Returns false when no title is present;
// title absence is the single validation gate for classifiability.
func BuildPostPrompt(p *domain.Post) (string, bool) {
	if p == nil || p.Title == "" {
		return "", false
	}

	var b strings.Builder
	if p.Adult {
		b.WriteString("[adult content] ")
	}
	if p.NSFW {
		b.WriteString("[NSFW] ")
	}
	if p.Spoiler {
		b.WriteString("[spoiler] ")
	}
	if p.Subreddit != "" {
		b.WriteString("r/")
		b.WriteString(p.Subreddit)
		b.WriteString(": ")
	}
	if p.Flair != "" {
		b.WriteString("[")
		b.WriteString(p.Flair)
		b.WriteString("] ")
	}
	b.WriteString(p.Title)

	return b.String(), true
}

// ThreadNode mirrors a comment subtree with every identifier stripped.
// Identifiers must never reach the inference service, so the redaction
// happens structurally: the type has no ID field to begin with.
type ThreadNode struct {
	Author   string       `json:"author,omitempty"`
	Body     string       `json:"body"`
	Children []ThreadNode `json:"children,omitempty"`
}

// ThreadPayload is the summarization unit submitted to inference: the
// redacted comment tree with the thread title and subreddit injected as
// top-level fields on the root only.
type ThreadPayload struct {
	Title     string       `json:"title,omitempty"`
	Subreddit string       `json:"subreddit,omitempty"`
	Author    string       `json:"author,omitempty"`
	Body      string       `json:"body"`
	Children  []ThreadNode `json:"children,omitempty"`
}

// BuildThreadPayload map-transforms a discovered comment tree into the
// redacted summarization payload, preserving the children ownership
// relation verbatim.
func BuildThreadPayload(root *domain.Comment, title, subreddit string) ThreadPayload {
	return ThreadPayload{
		Title:     title,
		Subreddit: subreddit,
		Author:    root.Author,
		Body:      root.Body,
		Children:  redactChildren(root.Children),
	}
}

func redactChildren(comments []*domain.Comment) []ThreadNode {
	if len(comments) == 0 {
		return nil
	}

	nodes := make([]ThreadNode, 0, len(comments))
	for _, c := range comments {
		nodes = append(nodes, ThreadNode{
			Author:   c.Author,
			Body:     c.Body,
			Children: redactChildren(c.Children),
		})
	}
	return nodes
}
