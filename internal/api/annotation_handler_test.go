package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/feedlens/internal/api"
	"github.com/mkarren/feedlens/internal/store"
)

type stubStatus struct {
	statuses  map[string]string
	available bool
}

func (s *stubStatus) Status(key string) (string, bool) {
	v, ok := s.statuses[key]
	return v, ok
}

func (s *stubStatus) Available() bool { return s.available }

func newTestServer(t *testing.T, st store.AnnotationStore, status *stubStatus) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewAnnotationHandler(st, status, logger)
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestGetPostAnnotation(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.PutPostClassification(context.Background(), "t3_a", []string{"Animal", "Cat"}))
	status := &stubStatus{statuses: map[string]string{"t3_a": "rendered"}, available: true}
	server := newTestServer(t, st, status)

	var body api.AnnotationResponse
	code := getJSON(t, server.URL+"/annotations/post/t3_a", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "post", body.Kind)
	assert.Equal(t, "t3_a", body.ID)
	assert.Equal(t, []string{"Animal", "Cat"}, body.Tags)
	assert.Equal(t, "rendered", body.Status)
}

func TestGetCommentAnnotation(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.PutCommentSummary(context.Background(), "t1_a", "## Recap"))
	server := newTestServer(t, st, &stubStatus{available: true})

	var body api.AnnotationResponse
	code := getJSON(t, server.URL+"/annotations/comment/t1_a", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "## Recap", body.Summary)
	assert.Empty(t, body.Tags)
}

func TestGetAnnotationNotFound(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore(), &stubStatus{})

	var body map[string]interface{}
	code := getJSON(t, server.URL+"/annotations/post/t3_missing", &body)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "error")
}

func TestGetAnnotationUnknownKind(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore(), &stubStatus{})

	var body map[string]interface{}
	code := getJSON(t, server.URL+"/annotations/user/t2_a", &body)

	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthz(t *testing.T) {
	t.Run("inference available", func(t *testing.T) {
		server := newTestServer(t, store.NewMemoryStore(), &stubStatus{available: true})

		var body api.HealthResponse
		code := getJSON(t, server.URL+"/healthz", &body)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "available", body.Inference)
	})

	t.Run("inference down", func(t *testing.T) {
		server := newTestServer(t, store.NewMemoryStore(), &stubStatus{available: false})

		var body api.HealthResponse
		code := getJSON(t, server.URL+"/healthz", &body)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "unavailable", body.Inference)
	})
}
