package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarren/feedlens/internal/api/shared"
	"github.com/mkarren/feedlens/internal/domain"
	"github.com/mkarren/feedlens/internal/store"
)

// StatusReader exposes the orchestrator's per-item state for inspection.
type StatusReader interface {
	Status(key string) (string, bool)
	Available() bool
}

// AnnotationResponse represents the response data for a cached annotation.
type AnnotationResponse struct {
	Kind    string   `json:"kind"`
	ID      string   `json:"id"`
	Tags    []string `json:"tags,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Status  string   `json:"status,omitempty"`
}

// AnnotationHandler serves read-only views of the annotation cache and
// pipeline state.
type AnnotationHandler struct {
	store  store.AnnotationStore
	status StatusReader
	logger *slog.Logger
}

// NewAnnotationHandler creates a new AnnotationHandler.
func NewAnnotationHandler(s store.AnnotationStore, status StatusReader, logger *slog.Logger) *AnnotationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationHandler{
		store:  s,
		status: status,
		logger: logger.With(slog.String("component", "annotation_handler")),
	}
}

// GetAnnotation handles GET /annotations/{kind}/{id} requests.
func (h *AnnotationHandler) GetAnnotation(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing item id")
		return
	}

	resp := AnnotationResponse{Kind: kind, ID: id}
	if h.status != nil {
		if s, ok := h.status.Status(id); ok {
			resp.Status = s
		}
	}

	switch domain.ItemKind(kind) {
	case domain.ItemKindPost:
		rec, ok, err := h.store.GetPost(r.Context(), id)
		if err != nil {
			h.logger.Error("cache lookup failed", slog.String("id", id), slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Cache lookup failed")
			return
		}
		if !ok {
			shared.RespondWithError(w, r, http.StatusNotFound, "Annotation not found")
			return
		}
		resp.Tags = rec.Tags
		resp.Summary = rec.Summary

	case domain.ItemKindComment:
		rec, ok, err := h.store.GetComment(r.Context(), id)
		if err != nil {
			h.logger.Error("cache lookup failed", slog.String("id", id), slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Cache lookup failed")
			return
		}
		if !ok {
			shared.RespondWithError(w, r, http.StatusNotFound, "Annotation not found")
			return
		}
		resp.Summary = rec.Summary

	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown annotation kind")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// HealthResponse reports process and inference service health.
type HealthResponse struct {
	Status    string `json:"status"`
	Inference string `json:"inference"`
}

// Healthz handles GET /healthz requests. The process is healthy even
// when inference is down; annotations are simply disabled.
func (h *AnnotationHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	inference := "unavailable"
	if h.status != nil && h.status.Available() {
		inference = "available"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Inference: inference,
	})
}
