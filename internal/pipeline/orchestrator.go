// Package pipeline wires discovery, caching, scheduling, inference and
// rendering together. The orchestrator owns the per-item state machine
// and the availability gate; everything below it is a collaborator
// behind an interface.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mkarren/feedlens/internal/domain"
	"github.com/mkarren/feedlens/internal/events"
	"github.com/mkarren/feedlens/internal/store"
	"github.com/mkarren/feedlens/internal/task"
)

// ItemStatus represents the processing state of a content item.
type ItemStatus string

// Per-item states. Marking happens on first observation and is the
// idempotency guard; every item ends in a terminal state (rendered,
// failed or skipped) and is never revisited.
const (
	StatusMarked     ItemStatus = "marked"
	StatusCacheHit   ItemStatus = "cache_hit"
	StatusDispatched ItemStatus = "dispatched"
	StatusRendered   ItemStatus = "rendered"
	StatusFailed     ItemStatus = "failed"
	StatusSkipped    ItemStatus = "skipped"
)

// Common errors returned by the pipeline package
var (
	ErrServiceUnavailable = errors.New("inference service unavailable")

	ErrNilStore      = errors.New("annotation store cannot be nil")
	ErrNilClassifier = errors.New("classifier cannot be nil")
	ErrNilSummarizer = errors.New("summarizer cannot be nil")
	ErrNilProber     = errors.New("prober cannot be nil")
	ErrNilRunner     = errors.New("runner cannot be nil")
	ErrNilSink       = errors.New("sink cannot be nil")
)

// Classifier produces a normalized tag list for a post.
type Classifier interface {
	ClassifyPost(ctx context.Context, post *domain.Post) ([]string, error)
}

// Summarizer produces a markdown summary for a comment thread.
type Summarizer interface {
	SummarizeThread(ctx context.Context, root *domain.Comment, title, subreddit string) (string, error)
}

// Prober checks inference service availability.
type Prober interface {
	Probe(ctx context.Context) error
}

// Runner executes a batch of tasks under a concurrency ceiling and
// returns the number of failures.
type Runner interface {
	Run(ctx context.Context, tasks []task.Task) int
}

// Config holds the pipeline policy knobs.
type Config struct {
	// MinDescendants is the summarization threshold: a thread is
	// summarized only when its descendant count strictly exceeds this.
	MinDescendants int

	// MaxThreads caps summarizations per discovery batch.
	MaxThreads int
}

// Deps bundles the orchestrator's collaborators.
type Deps struct {
	Store      store.AnnotationStore
	Classifier Classifier
	Summarizer Summarizer
	Prober     Prober
	Runner     Runner
	Sink       Sink
	Notifier   Notifier
	Logger     *slog.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Store == nil:
		return ErrNilStore
	case d.Classifier == nil:
		return ErrNilClassifier
	case d.Summarizer == nil:
		return ErrNilSummarizer
	case d.Prober == nil:
		return ErrNilProber
	case d.Runner == nil:
		return ErrNilRunner
	case d.Sink == nil:
		return ErrNilSink
	}
	return nil
}

// Orchestrator consumes discovery events and drives each item through
// the annotation state machine.
type Orchestrator struct {
	cfg        Config
	store      store.AnnotationStore
	classifier Classifier
	summarizer Summarizer
	prober     Prober
	runner     Runner
	sink       Sink
	notifier   Notifier
	logger     *slog.Logger

	mu                  sync.Mutex
	status              map[string]ItemStatus
	available           bool
	unavailableReported bool
}

// NewOrchestrator creates an Orchestrator. Availability starts false;
// call RefreshAvailability before processing.
func NewOrchestrator(cfg Config, deps Deps) (*Orchestrator, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	return &Orchestrator{
		cfg:        cfg,
		store:      deps.Store,
		classifier: deps.Classifier,
		summarizer: deps.Summarizer,
		prober:     deps.Prober,
		runner:     deps.Runner,
		sink:       deps.Sink,
		notifier:   notifier,
		logger:     logger.With(slog.String("component", "orchestrator")),
		status:     make(map[string]ItemStatus),
	}, nil
}

// Ensure Orchestrator implements events.Handler
var _ events.Handler = (*Orchestrator)(nil)

// RefreshAvailability probes the inference service and updates the
// global gate. Called once at startup and again at the start of each
// summarization session; it is not re-checked continuously.
func (o *Orchestrator) RefreshAvailability(ctx context.Context) bool {
	err := o.prober.Probe(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.available = err == nil
	o.unavailableReported = false

	if err != nil {
		o.logger.Warn("availability probe failed", slog.String("error", err.Error()))
	} else {
		o.logger.Info("inference service available")
	}

	return o.available
}

// Available reports the result of the last probe.
func (o *Orchestrator) Available() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.available
}

// Status returns the recorded state of an item key.
func (o *Orchestrator) Status(key string) (ItemStatus, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.status[key]
	return s, ok
}

// HandleEvent implements events.Handler by processing the event's items
// as one batch.
func (o *Orchestrator) HandleEvent(ctx context.Context, event *events.DiscoveryEvent) error {
	return o.Process(ctx, event.Items)
}

// Process drives a batch of discovered items through the state machine:
// mark, cache lookup, dispatch, render. It blocks until every
// dispatched item has reached a terminal state. Item-level failures are
// contained by the scheduler; Process itself fails only on a nil item
// slice entry, which indicates a discovery bug.
func (o *Orchestrator) Process(ctx context.Context, items []domain.ContentItem) error {
	if !o.gate() {
		return nil
	}

	var tasks []task.Task
	summarized := 0

	for _, item := range items {
		if item == nil {
			continue
		}
		if !o.mark(item) {
			// Duplicate discovery event for an already-marked item.
			o.logger.Debug("skipping already marked item", slog.String("key", item.Key()))
			continue
		}

		switch v := item.(type) {
		case *domain.Post:
			if t := o.admitPost(ctx, v); t != nil {
				tasks = append(tasks, t)
			}
		case *domain.Comment:
			if t := o.admitComment(ctx, v, &summarized); t != nil {
				tasks = append(tasks, t)
			}
		default:
			o.logger.Warn("unknown content item kind", slog.String("kind", string(item.Kind())))
		}
	}

	if len(tasks) > 0 {
		o.logger.Info("dispatching annotation batch", slog.Int("task_count", len(tasks)))
		failed := o.runner.Run(ctx, tasks)
		if failed > 0 {
			o.logger.Warn("batch finished with failures",
				slog.Int("task_count", len(tasks)),
				slog.Int("failed", failed))
		}
	}

	return nil
}

// Resummarize is the manual re-generation path: it bypasses the cache
// check, regenerates the thread summary synchronously and overwrites
// the cached record.
func (o *Orchestrator) Resummarize(ctx context.Context, root *domain.Comment) (string, error) {
	if !o.Available() {
		return "", ErrServiceUnavailable
	}

	summary, err := o.summarizer.SummarizeThread(ctx, root, root.ThreadTitle, root.ThreadSubreddit)
	if err != nil {
		return "", err
	}

	o.writeCommentSummary(ctx, root, summary)

	if err := o.sink.RenderSummary(root, summary); err != nil {
		return "", err
	}

	o.setStatus(root.Key(), StatusRendered)
	return summary, nil
}

// gate checks the availability flag, reporting unavailability once per
// probe rather than once per item.
func (o *Orchestrator) gate() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.available {
		return true
	}
	if !o.unavailableReported {
		o.notifier.Notify("inference service unavailable; annotations disabled for this session")
		o.unavailableReported = true
	}
	return false
}

// mark records first observation of an item. Returns false when the
// item was already marked. Items without a key cannot be deduplicated
// and are always admitted.
func (o *Orchestrator) mark(item domain.ContentItem) bool {
	key := item.Key()
	if key == "" {
		return true
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, seen := o.status[key]; seen {
		return false
	}
	o.status[key] = StatusMarked
	return true
}

// admitPost resolves a post against the cache and returns a
// classification task on a miss.
func (o *Orchestrator) admitPost(ctx context.Context, post *domain.Post) task.Task {
	if key := post.Key(); key != "" {
		rec, ok, err := o.store.GetPost(ctx, key)
		if err != nil {
			o.cacheFailure("annotation cache read failed", err)
		}
		if ok && (rec.HasClassification() || rec.HasSummary()) {
			o.renderCachedPost(post, rec)
			return nil
		}
	}

	o.setStatus(post.Key(), StatusDispatched)
	return newClassifyTask(o, post)
}

// admitComment applies the summarization policy (threshold, per-batch
// cap), resolves the cache and returns a summarization task on a miss.
func (o *Orchestrator) admitComment(ctx context.Context, root *domain.Comment, summarized *int) task.Task {
	count := root.DescendantCount()
	if count <= o.cfg.MinDescendants {
		o.logger.Debug("skipping small thread",
			slog.String("key", root.Key()),
			slog.Int("descendants", count))
		o.setStatus(root.Key(), StatusSkipped)
		return nil
	}

	if o.cfg.MaxThreads > 0 && *summarized >= o.cfg.MaxThreads {
		o.logger.Debug("thread cap reached for batch", slog.String("key", root.Key()))
		o.setStatus(root.Key(), StatusSkipped)
		return nil
	}

	if key := root.Key(); key != "" {
		rec, ok, err := o.store.GetComment(ctx, key)
		if err != nil {
			o.cacheFailure("annotation cache read failed", err)
		}
		if ok && rec.HasSummary() {
			o.setStatus(key, StatusCacheHit)
			if err := o.sink.RenderSummary(root, rec.Summary); err == nil {
				o.setStatus(key, StatusRendered)
			} else {
				o.setStatus(key, StatusFailed)
			}
			return nil
		}
	}

	*summarized++
	o.setStatus(root.Key(), StatusDispatched)
	return newSummarizeTask(o, root)
}

// renderCachedPost renders a cache hit without touching inference.
func (o *Orchestrator) renderCachedPost(post *domain.Post, rec domain.PostRecord) {
	key := post.Key()
	o.setStatus(key, StatusCacheHit)

	if rec.HasClassification() {
		if err := o.sink.RenderTags(post, rec.Tags); err != nil {
			o.setStatus(key, StatusFailed)
			return
		}
	}
	if rec.HasSummary() {
		if err := o.sink.RenderSummary(post, rec.Summary); err != nil {
			o.setStatus(key, StatusFailed)
			return
		}
	}

	o.setStatus(key, StatusRendered)
}

// writePostClassification persists a classification, degrading to
// uncached operation on failure.
func (o *Orchestrator) writePostClassification(ctx context.Context, post *domain.Post, tags []string) {
	key := post.Key()
	if key == "" {
		return
	}
	if err := o.store.PutPostClassification(ctx, key, tags); err != nil {
		o.cacheFailure("annotation cache write failed", err)
	}
}

// writeCommentSummary persists a thread summary, degrading to uncached
// operation on failure.
func (o *Orchestrator) writeCommentSummary(ctx context.Context, root *domain.Comment, summary string) {
	key := root.Key()
	if key == "" {
		return
	}
	if err := o.store.PutCommentSummary(ctx, key, summary); err != nil {
		o.cacheFailure("annotation cache write failed", err)
	}
}

// cacheFailure logs a cache error and raises a transient notice; the
// pipeline continues without caching.
func (o *Orchestrator) cacheFailure(message string, err error) {
	o.logger.Error(message, slog.String("error", err.Error()))
	o.notifier.Notify(message + "; continuing without cache")
}

// setStatus records an item's state. Keyless items have no entry.
func (o *Orchestrator) setStatus(key string, status ItemStatus) {
	if key == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status[key] = status
}
