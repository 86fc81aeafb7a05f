// Package notify delivers user-facing outcome messages. The store reports
// every mutation outcome through ports.Notifier; this adapter surfaces them
// as structured log events for operators and for any frontend tailing the
// log stream.
package notify

import (
	"context"
	"log/slog"

	"github.com/nordsym/guldkant/internal/ports"
)

// LogNotifier implements ports.Notifier on top of slog.
type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier. A nil logger falls back to the default.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{logger: logger}
}

// Success reports a completed mutation to the user.
func (n *LogNotifier) Success(ctx context.Context, message string) {
	n.logger.InfoContext(ctx, "notification",
		slog.String("kind", "success"),
		slog.String("message", message),
	)
}

// Error reports a failed mutation to the user.
func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.logger.WarnContext(ctx, "notification",
		slog.String("kind", "error"),
		slog.String("message", message),
	)
}
