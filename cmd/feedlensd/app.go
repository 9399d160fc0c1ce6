package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mkarren/feedlens/internal/api"
	"github.com/mkarren/feedlens/internal/config"
	"github.com/mkarren/feedlens/internal/events"
	"github.com/mkarren/feedlens/internal/generation"
	"github.com/mkarren/feedlens/internal/pipeline"
	"github.com/mkarren/feedlens/internal/platform/logger"
	"github.com/mkarren/feedlens/internal/platform/ollama"
	"github.com/mkarren/feedlens/internal/platform/sqlite"
	"github.com/mkarren/feedlens/internal/store"
	"github.com/mkarren/feedlens/internal/task"
)

// application bundles the wired components and owns their shutdown order.
type application struct {
	cfg          *config.Config
	logger       *slog.Logger
	store        store.AnnotationStore
	orchestrator *pipeline.Orchestrator
	emitter      *events.InMemoryEmitter
	apiServer    *http.Server
}

// buildApplication loads configuration and wires every component: store,
// inference client, annotator, scheduler, orchestrator and emitter.
func buildApplication(ctx context.Context, configFile string) (*application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		slog.String("model", cfg.Ollama.Model),
		slog.Int("concurrency", cfg.Pipeline.Concurrency),
		slog.Bool("persistent_cache", cfg.Cache.Path != ""))

	annotationStore, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	client := ollama.NewClient(cfg.Ollama, appLogger)
	annotator := generation.NewAnnotator(client, appLogger)
	scheduler := task.NewScheduler(cfg.Pipeline.Concurrency, appLogger)

	orchestrator, err := pipeline.NewOrchestrator(
		pipeline.Config{
			MinDescendants: cfg.Pipeline.MinDescendants,
			MaxThreads:     cfg.Pipeline.MaxThreads,
		},
		pipeline.Deps{
			Store:      annotationStore,
			Classifier: annotator,
			Summarizer: annotator,
			Prober:     client,
			Runner:     scheduler,
			Sink:       pipeline.NewJSONSink(os.Stdout),
			Logger:     appLogger,
		},
	)
	if err != nil {
		_ = annotationStore.Close()
		return nil, fmt.Errorf("failed to build orchestrator: %w", err)
	}

	orchestrator.RefreshAvailability(ctx)

	emitter := events.NewInMemoryEmitter(appLogger)
	emitter.RegisterHandler(orchestrator)

	return &application{
		cfg:          cfg,
		logger:       appLogger,
		store:        annotationStore,
		orchestrator: orchestrator,
		emitter:      emitter,
	}, nil
}

// openStore selects the annotation cache backend: SQLite when a path is
// configured, otherwise in-memory.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.AnnotationStore, error) {
	if cfg.Cache.Path == "" {
		log.Info("using in-memory annotation cache")
		return store.NewMemoryStore(), nil
	}

	s, err := sqlite.Open(ctx, cfg.Cache.Path, log)
	if err != nil {
		// Cache loss is not fatal: run the session uncached.
		log.Error("failed to open annotation cache, continuing without persistence",
			slog.String("path", cfg.Cache.Path),
			slog.String("error", err.Error()))
		return store.NewMemoryStore(), nil
	}

	log.Info("annotation cache opened", slog.String("path", cfg.Cache.Path))
	return s, nil
}

// statusAdapter exposes the orchestrator's state to the inspection API.
type statusAdapter struct {
	orch *pipeline.Orchestrator
}

func (a statusAdapter) Status(key string) (string, bool) {
	s, ok := a.orch.Status(key)
	return string(s), ok
}

func (a statusAdapter) Available() bool { return a.orch.Available() }

// startAPIServer serves the read-only inspection API in the background.
// A zero-value listen address disables it.
func (app *application) startAPIServer(ctx context.Context) {
	if app.cfg.Server.APIAddr == "" {
		return
	}

	handler := api.NewAnnotationHandler(app.store, statusAdapter{app.orchestrator}, app.logger)
	app.apiServer = &http.Server{
		Addr:    app.cfg.Server.APIAddr,
		Handler: api.NewRouter(handler),
	}

	go func() {
		app.logger.Info("inspection API listening", slog.String("addr", app.cfg.Server.APIAddr))
		if err := app.apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("inspection API failed", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.apiServer.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("inspection API shutdown failed", slog.String("error", err.Error()))
		}
	}()
}

// close releases resources in reverse construction order.
func (app *application) close() {
	if err := app.store.Close(); err != nil {
		app.logger.Error("failed to close annotation cache", slog.String("error", err.Error()))
	}
	app.logger.Info("shutdown complete")
}
