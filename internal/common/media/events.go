package media

import (
	"context"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/metrics"
)

type EventType string

const (
	EventUploadAttempted     EventType = "upload_attempted"
	EventUploadSucceeded     EventType = "upload_succeeded"
	EventUploadFailed        EventType = "upload_failed"
	EventResolveFailed       EventType = "resolve_failed"
	EventFeaturedSelected    EventType = "featured_selected"
	EventSubstitutionApplied EventType = "substitution_applied"
	EventPlaceholderMissing  EventType = "placeholder_missing"
)

// Event is emitted by the pipeline at each step of an image.
type Event struct {
	Type        EventType
	Index       int
	Placeholder string
	Filename    string
	AssetID     int64
	SourceURL   string
	Err         error
}

// EventSink receives pipeline events. Implementations must not block.
type EventSink interface {
	Emit(ctx context.Context, ev Event)
}

type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}

// MultiSink fans an event out to every sink in order.
type MultiSink []EventSink

func (m MultiSink) Emit(ctx context.Context, ev Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ctx, ev)
		}
	}
}

// LoggerSink writes events as structured log lines. Failures log at warn,
// everything else at debug.
type LoggerSink struct {
	log logger.Logger
}

func NewLoggerSink(log logger.Logger) *LoggerSink {
	return &LoggerSink{log: log}
}

func (s *LoggerSink) Emit(_ context.Context, ev Event) {
	fields := map[string]interface{}{
		"event":       string(ev.Type),
		"index":       ev.Index,
		"placeholder": ev.Placeholder,
		"filename":    ev.Filename,
	}
	if ev.AssetID != 0 {
		fields["asset_id"] = ev.AssetID
	}
	if ev.SourceURL != "" {
		fields["source_url"] = ev.SourceURL
	}

	switch ev.Type {
	case EventUploadFailed, EventResolveFailed:
		if ev.Err != nil {
			fields["error"] = errors.Summarize(ev.Err)
			if stdErr, ok := errors.AsStandard(ev.Err); ok {
				fields["error_code"] = string(stdErr.Code)
			}
		}
		s.log.Warn("image step failed", fields)
	case EventPlaceholderMissing:
		s.log.Warn("placeholder not found in content", fields)
	default:
		s.log.Debug("image pipeline event", fields)
	}
}

// MetricsSink counts events in wordpress_pipeline_events_total.
type MetricsSink struct{}

func (MetricsSink) Emit(_ context.Context, ev Event) {
	metrics.PipelineEvents.WithLabelValues(string(ev.Type)).Inc()
}
