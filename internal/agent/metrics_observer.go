package agent

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/b0gochort/spamwarden/internal/telemetry"
)

// MetricsObserver feeds scoring and retrain events into the process's
// telemetry instruments.
type MetricsObserver struct {
	metrics *telemetry.Metrics
}

func NewMetricsObserver(metrics *telemetry.Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: metrics}
}

func (o *MetricsObserver) OnScored(ev ScoringEvent) {
	ctx := context.Background()
	o.metrics.MessagesScored.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", string(ev.Decision))))
}

func (o *MetricsObserver) OnRetrained(ev RetrainEvent) {
	ctx := context.Background()
	outcome := "failed"
	if ev.Success {
		outcome = "succeeded"
	}
	o.metrics.RetrainRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if ev.Activated {
		o.metrics.ActiveModelGauge.Record(ctx, ev.NewVersion)
	}
}
