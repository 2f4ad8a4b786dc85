// Package notify delivers budget alerts to the user.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes alerts to the structured log. It stands in for a push
// delivery channel; the alert audit trail lives in the store regardless.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify emits one alert.
func (n *LogNotifier) Notify(_ context.Context, title, body string) error {
	n.logger.Info("ALERT", "title", title, "body", body)
	return nil
}
