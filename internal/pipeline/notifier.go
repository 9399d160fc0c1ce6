package pipeline

import "log/slog"

// Notifier surfaces transient, user-visible notices: the availability
// banner and cache-failure warnings. Notices are informational and
// auto-dismissing; there is no blocking error surface anywhere in the
// pipeline.
type Notifier interface {
	Notify(message string)
}

// LogNotifier reports notices through the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a Notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With(slog.String("component", "notifier"))}
}

// Notify implements Notifier.Notify.
func (n *LogNotifier) Notify(message string) {
	n.logger.Warn(message)
}

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)
