package events

import (
	"context"
	"log/slog"

	"github.com/rickchristie/genui"
)

// SlogSubscriber logs every event through a *slog.Logger.
//
// The event severity maps to the log level, Event.Message to the log message, and
// Event.Attrs plus the event name to the log attributes:
//
//	level=WARN msg="unresolved component: Chart" event=genui:component:unresolved
//	    session=chat-42 frame=7 component=Chart hint="add a usage example of <Chart> ..."
type SlogSubscriber struct {
	logger *slog.Logger
}

// NewSlogSubscriber creates a SlogSubscriber. A nil logger means slog.Default().
func NewSlogSubscriber(logger *slog.Logger) *SlogSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSubscriber{logger: logger}
}

// OnEvent implements genui.EventSubscriber.
func (s *SlogSubscriber) OnEvent(_ *genui.Session, event genui.Event) {
	level := Level(event.Severity())
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	args := append([]any{"event", event.EventName()}, event.Attrs()...)
	s.logger.Log(ctx, level, event.Message(), args...)
}

// Level maps an event severity to a slog level.
func Level(sev genui.Severity) slog.Level {
	switch sev {
	case genui.SeverityDebug:
		return slog.LevelDebug
	case genui.SeverityInfo:
		return slog.LevelInfo
	case genui.SeverityWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
