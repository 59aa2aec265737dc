package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// JobInstrumenter traces and meters background jobs such as the idle session sweep.
type JobInstrumenter struct {
	tracer      trace.Tracer
	jobDuration metric.Float64Histogram
	jobsTotal   metric.Int64Counter
}

// NewJobInstrumenter creates the job instruments on meter.
func NewJobInstrumenter(tracer trace.Tracer, meter metric.Meter) (*JobInstrumenter, error) {
	jobDuration, err := meter.Float64Histogram(
		"sahayak.job.duration",
		metric.WithDescription("Background job duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	jobsTotal, err := meter.Int64Counter(
		"sahayak.jobs",
		metric.WithDescription("Total background jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	return &JobInstrumenter{
		tracer:      tracer,
		jobDuration: jobDuration,
		jobsTotal:   jobsTotal,
	}, nil
}

// NewGlobalJobInstrumenter uses the process-wide tracer and meter providers.
func NewGlobalJobInstrumenter() (*JobInstrumenter, error) {
	return NewJobInstrumenter(Tracer(), otel.Meter(TracerName))
}

// InstrumentJob runs fn inside a span and records its duration and outcome.
func (j *JobInstrumenter) InstrumentJob(ctx context.Context, jobType string, fn func(context.Context) error) error {
	ctx, span := j.tracer.Start(ctx, "job."+jobType,
		trace.WithAttributes(attribute.String("job.type", jobType)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs := metric.WithAttributes(
		attribute.String("job.type", jobType),
		attribute.String("status", status),
	)
	j.jobDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	j.jobsTotal.Add(ctx, 1, attrs)
	return err
}
