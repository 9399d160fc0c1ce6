package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/feedlens/internal/domain"
)

// mockChatClient implements ChatClient for testing
type mockChatClient struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (m *mockChatClient) Chat(_ context.Context, system, user string) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyPostNormalizesTags(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{reply: `["Cat","Animal","Cat"]`}
	a := NewAnnotator(client, testLogger())

	tags, err := a.ClassifyPost(context.Background(), &domain.Post{ID: "t3_a", Title: "My cat"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Animal", "Cat"}, tags)
	assert.Equal(t, 1, client.calls)
}

func TestClassifyPostCaseSensitiveDedupe(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{reply: `["animal","Cat","Animal"]`}
	a := NewAnnotator(client, testLogger())

	tags, err := a.ClassifyPost(context.Background(), &domain.Post{ID: "t3_a", Title: "My cat"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Animal", "Cat", "animal"}, tags)
}

func TestClassifyPostUnclassifiable(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{reply: `["X"]`}
	a := NewAnnotator(client, testLogger())

	_, err := a.ClassifyPost(context.Background(), &domain.Post{ID: "t3_a"})

	assert.ErrorIs(t, err, ErrNotClassifiable)
	assert.Zero(t, client.calls, "no inference call for an unclassifiable item")
}

func TestClassifyPostTransportFailure(t *testing.T) {
	t.Parallel()
	transportErr := errors.New("connection refused")
	client := &mockChatClient{err: transportErr}
	a := NewAnnotator(client, testLogger())

	_, err := a.ClassifyPost(context.Background(), &domain.Post{ID: "t3_a", Title: "My cat"})

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, transportErr)
}

func TestClassifyPostGarbageReplyDegradesToEmpty(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{reply: "I couldn't decide on tags, sorry."}
	a := NewAnnotator(client, testLogger())

	tags, err := a.ClassifyPost(context.Background(), &domain.Post{ID: "t3_a", Title: "My cat"})

	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestSummarizeThreadSubmitsRedactedPayload(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{reply: "## Summary\n\nEveryone agrees.\n"}
	a := NewAnnotator(client, testLogger())

	root := &domain.Comment{
		ID:   "t1_root",
		Body: "top",
		Children: []*domain.Comment{
			{ID: "t1_a", Body: "reply"},
		},
	}

	summary, err := a.SummarizeThread(context.Background(), root, "Thread title", "science")

	require.NoError(t, err)
	assert.Equal(t, "## Summary\n\nEveryone agrees.", summary)

	// The user message is the JSON payload with IDs stripped and the
	// thread fields on the root.
	var payload ThreadPayload
	require.NoError(t, json.Unmarshal([]byte(client.lastUser), &payload))
	assert.Equal(t, "Thread title", payload.Title)
	assert.Equal(t, "science", payload.Subreddit)
	assert.NotContains(t, client.lastUser, "t1_root")
	assert.NotContains(t, client.lastUser, "t1_a")
}

func TestSummarizeThreadTransportFailure(t *testing.T) {
	t.Parallel()
	client := &mockChatClient{err: errors.New("boom")}
	a := NewAnnotator(client, testLogger())

	_, err := a.SummarizeThread(context.Background(), &domain.Comment{ID: "x", Body: "b"}, "", "")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}
