package domain

import "testing"

// buildThread builds a root comment with the given number of transitive
// descendants arranged as a simple chain plus siblings.
func buildThread(descendants int) *Comment {
	root := &Comment{ID: "t1_root", Body: "root"}
	current := root
	for i := 0; i < descendants; i++ {
		child := &Comment{ID: "t1_child", Body: "child"}
		current.Children = append(current.Children, child)
		if i%2 == 0 {
			current = child
		}
	}
	return root
}

func TestNewComment(t *testing.T) {
	t.Parallel()
	comment, err := NewComment("t1_xyz", "someone", "interesting take", nil)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if comment.Kind() != ItemKindComment {
		t.Errorf("Expected kind %s, got %s", ItemKindComment, comment.Kind())
	}

	if comment.Key() != "t1_xyz" {
		t.Errorf("Expected key t1_xyz, got %s", comment.Key())
	}

	_, err = NewComment("t1_xyz", "someone", "", nil)
	if err != ErrEmptyCommentBody {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentBody, err)
	}
}

func TestDescendantCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		descendants int
	}{
		{"leaf", 0},
		{"single child", 1},
		{"at threshold", 5},
		{"above threshold", 6},
		{"deep thread", 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := buildThread(tt.descendants)
			if got := root.DescendantCount(); got != tt.descendants {
				t.Errorf("Expected %d descendants, got %d", tt.descendants, got)
			}
		})
	}
}

func TestDescendantCountNested(t *testing.T) {
	t.Parallel()
	// Root with two children; one child has two of its own.
	root := &Comment{
		ID:   "a",
		Body: "a",
		Children: []*Comment{
			{ID: "b", Body: "b", Children: []*Comment{
				{ID: "c", Body: "c"},
				{ID: "d", Body: "d"},
			}},
			{ID: "e", Body: "e"},
		},
	}

	if got := root.DescendantCount(); got != 4 {
		t.Errorf("Expected 4 descendants, got %d", got)
	}
}
