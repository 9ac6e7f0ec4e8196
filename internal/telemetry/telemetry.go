// Package telemetry wraps an OpenTelemetry MeterProvider exposing the
// counters and gauge the agents report against. With no OTLP endpoint
// configured it falls back to a manual reader periodically snapshotted
// into the zap logger, so the metrics are still visible without an
// external collector.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

const scopeName = "github.com/b0gochort/spamwarden"

// Metrics holds the process's instruments and the reader used to snapshot
// them when no OTLP collector is configured.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	logger   *zap.Logger

	MessagesScored   metric.Int64Counter
	Reviews          metric.Int64Counter
	RetrainRuns      metric.Int64Counter
	ActiveModelGauge metric.Int64Gauge
}

// New builds the meter provider. If endpoint is empty a ManualReader backs
// it and Metrics.StartSnapshotLoop can be used to log periodic totals;
// otherwise metrics export over OTLP/HTTP to endpoint.
func New(ctx context.Context, endpoint string, logger *zap.Logger) (*Metrics, error) {
	var reader *sdkmetric.ManualReader
	var opts []sdkmetric.Option

	if endpoint == "" {
		reader = sdkmetric.NewManualReader()
		opts = append(opts, sdkmetric.WithReader(reader))
	} else {
		exp, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure())
		if err != nil {
			return nil, fmt.Errorf("telemetry: create otlp exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(15*time.Second))))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	meter := provider.Meter(scopeName)

	scored, err := meter.Int64Counter("spam_messages_scored_total")
	if err != nil {
		return nil, err
	}
	reviews, err := meter.Int64Counter("spam_reviews_total")
	if err != nil {
		return nil, err
	}
	retrains, err := meter.Int64Counter("spam_retrain_runs_total")
	if err != nil {
		return nil, err
	}
	activeVersion, err := meter.Int64Gauge("spam_active_model_version")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		provider:         provider,
		reader:           reader,
		logger:           logger,
		MessagesScored:   scored,
		Reviews:          reviews,
		RetrainRuns:      retrains,
		ActiveModelGauge: activeVersion,
	}, nil
}

// StartSnapshotLoop periodically logs the current total of each counter when
// no OTLP collector is configured; the gauge is not logged. It is a no-op if OTLP export is active.
// Blocks until ctx is cancelled.
func (m *Metrics) StartSnapshotLoop(ctx context.Context, interval time.Duration) {
	if m.reader == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.logSnapshot(ctx)
		}
	}
}

func (m *Metrics) logSnapshot(ctx context.Context) {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		m.logger.Warn("telemetry snapshot failed", zap.Error(err))
		return
	}
	var fields []zap.Field
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			fields = append(fields, zap.Int64(md.Name, total))
		}
	}
	m.logger.Info("telemetry snapshot", fields...)
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
