package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	transitionCounter  otelmetric.Int64Counter
	submissionDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	transitionCounter, _ := meter.Int64Counter(
		"wizard.step.transitions",
		otelmetric.WithDescription("Number of step transitions"),
	)

	submissionDuration, _ := meter.Float64Histogram(
		"wizard.submission.duration",
		otelmetric.WithDescription("Finalize-to-archived duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		transitionCounter:  transitionCounter,
		submissionDuration: submissionDuration,
	}
}

func (o *Observability) RecordTransition(ctx context.Context, from, to string) {
	if o.transitionCounter != nil {
		o.transitionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("from", from),
			attribute.String("to", to),
		))
	}
}

func (o *Observability) RecordSubmission(ctx context.Context, duration time.Duration, status string) {
	if o.submissionDuration != nil {
		o.submissionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
