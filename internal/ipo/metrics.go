package ipo

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Fetch outcomes reported on the fetch counter.
const (
	outcomeOK        = "ok"
	outcomeCached    = "cached"
	outcomeStatus    = "http_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

type clientMetrics struct {
	fetches  metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(meter metric.Meter) *clientMetrics {
	if meter == nil {
		return nil
	}

	cm := &clientMetrics{}
	cm.fetches, _ = meter.Int64Counter("ipoadmin.ipo.fetches",
		metric.WithDescription("Remote IPO listing fetches by outcome"),
		metric.WithUnit("{fetch}"))
	cm.duration, _ = meter.Float64Histogram("ipoadmin.ipo.fetch.duration",
		metric.WithDescription("Latency of remote IPO listing requests"),
		metric.WithUnit("ms"))
	return cm
}

func (cm *clientMetrics) observe(ctx context.Context, outcome string, started time.Time) {
	if cm == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if cm.fetches != nil {
		cm.fetches.Add(ctx, 1, attrs)
	}
	if cm.duration != nil && outcome != outcomeCached {
		cm.duration.Record(ctx, float64(time.Since(started).Microseconds())/1000, attrs)
	}
}
