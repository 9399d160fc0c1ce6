package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the inspection API router. All routes are read-only.
func NewRouter(handler *AnnotationHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/annotations/{kind}/{id}", handler.GetAnnotation)

	return r
}
