package notification

import (
	"context"
	"log/slog"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/middleware"
)

// LogNotifier renders notifications and writes them to the request logger.
// It is used when no queue is configured, e.g. local development.
type LogNotifier struct {
	renderer *Renderer
}

func NewLogNotifier(renderer *Renderer) *LogNotifier {
	return &LogNotifier{renderer: renderer}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Send(ctx context.Context, notification domain.Notification) error {
	msg, err := n.renderer.Render(notification)
	if err != nil {
		return err
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Notification not queued, logging instead",
		slog.String("template", string(msg.Template)),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	logger.Debug("Notification body", slog.String("body", msg.TextBody))
	return nil
}
