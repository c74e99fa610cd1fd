// Package notify pushes vote lifecycle and issue alerts to operator
// channels. The watcher reports transitions it observes (a vote closing,
// a settlement, a fresh issue suggestion) and the notifier fans them out
// to every configured sender, filtered by the event allow-list.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender is one delivery channel. Senders receive the event alongside the
// text so each can apply its own per-event styling.
type Sender interface {
	Send(ctx context.Context, event Event, title, message string) error
	// Name identifies the sender in logs and error messages.
	Name() string
}

// Notifier fans events out to its senders. Only events on the allow-list
// pass; an empty list allows everything, so a fresh install alerts on all
// transitions until the operator narrows it down.
type Notifier struct {
	senders []Sender
	allowed map[Event]bool
	logger  *slog.Logger
}

// NewNotifier builds a Notifier over the given senders. The events slice
// comes straight from the [notify] config section.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[Event]bool, len(events))
	for _, e := range events {
		allowed[Event(strings.TrimSpace(e))] = true
	}
	return &Notifier{
		senders: senders,
		allowed: allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Notify delivers one alert to every sender, unless the event is filtered
// out by the allow-list. A failing sender does not block the others; all
// failures come back as one combined error.
func (n *Notifier) Notify(ctx context.Context, event Event, title, message string) error {
	if len(n.allowed) > 0 && !n.allowed[event] {
		n.logger.DebugContext(ctx, "event filtered out",
			slog.String("event", string(event)),
		)
		return nil
	}

	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, event, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("event", string(event)),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
		} else {
			n.logger.DebugContext(ctx, "notification sent",
				slog.String("sender", s.Name()),
				slog.String("event", string(event)),
			)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}
