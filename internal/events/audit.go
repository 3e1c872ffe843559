package events

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// AuditHandler writes every task event to the log and counts it by type.
type AuditHandler struct {
	logger *slog.Logger
	total  *prometheus.CounterVec
}

var _ EventHandler = (*AuditHandler)(nil)

// NewAuditHandler creates an AuditHandler and registers its task_events_total
// counter with reg. A nil reg leaves the counter unregistered.
func NewAuditHandler(logger *slog.Logger, reg prometheus.Registerer) (*AuditHandler, error) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "task_events_total",
		Help: "Number of task lifecycle events, partitioned by type.",
	}, []string{"type"})

	if reg != nil {
		if err := reg.Register(total); err != nil {
			return nil, err
		}
	}

	return &AuditHandler{
		logger: logger.With("component", "task_audit"),
		total:  total,
	}, nil
}

// HandleEvent implements EventHandler.
func (h *AuditHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.total.WithLabelValues(event.Type).Inc()
	h.logger.InfoContext(ctx, "task event",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", string(event.Payload),
		"created_at", event.CreatedAt)
	return nil
}

// Counter exposes the underlying counter vector.
func (h *AuditHandler) Counter() *prometheus.CounterVec {
	return h.total
}
