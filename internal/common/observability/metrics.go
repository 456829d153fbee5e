package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the otel meter whose instruments are exported through
// the default prometheus registry alongside the promauto vectors.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	callCounter   otelmetric.Int64Counter
	callDuration  otelmetric.Float64Histogram
	imageCounter  otelmetric.Int64Counter
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	callCounter, _ := meter.Int64Counter(
		"tool.calls",
		otelmetric.WithDescription("Number of tool calls processed"),
	)

	callDuration, _ := meter.Float64Histogram(
		"tool.duration",
		otelmetric.WithDescription("Tool call processing duration"),
		otelmetric.WithUnit("ms"),
	)

	imageCounter, _ := meter.Int64Counter(
		"pipeline.images",
		otelmetric.WithDescription("Images processed by the upload pipeline"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		callCounter:   callCounter,
		callDuration:  callDuration,
		imageCounter:  imageCounter,
	}, nil
}

// Nop returns an Observability whose recorders do nothing.
func Nop() *Observability {
	return &Observability{}
}

func (o *Observability) RecordCall(ctx context.Context, tool, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	if o.callCounter != nil {
		o.callCounter.Add(ctx, 1, attrs)
	}
	if o.callDuration != nil {
		o.callDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// RecordImages counts pipeline images by result (uploaded, failed).
func (o *Observability) RecordImages(ctx context.Context, result string, n int) {
	if o == nil || o.imageCounter == nil || n == 0 {
		return
	}
	o.imageCounter.Add(ctx, int64(n), otelmetric.WithAttributes(
		attribute.String("result", result),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
