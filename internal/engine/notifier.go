package engine

import (
	"log/slog"

	"github.com/jwebster45206/endless-dnd/pkg/chat"
)

// Notifier receives gameplay notifications (damage, rolls, time) as
// they happen. The browser client plays sounds and popups off these;
// the server default just logs them.
type Notifier interface {
	Notify(n chat.Notification)
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier that logs each notification.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(n chat.Notification) {
	l.logger.Info("Game notification", "type", n.Type, "value", n.Value, "label", n.Label)
}
