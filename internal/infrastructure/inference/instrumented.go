package inference

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure/metrics"
)

const (
	outcomeOK        = "ok"
	outcomeMalformed = "malformed"
	outcomeTimeout   = "timeout"
	outcomeCanceled  = "canceled"
	outcomeFailure   = "failure"
)

// InstrumentedClassifier traces and counts every call to the wrapped classifier
// and rejects decisions that fail validation, whichever implementation made them.
type InstrumentedClassifier struct {
	next   classification.Classifier
	mode   classification.Mode
	format grievance.TicketFormat
	tracer trace.Tracer
}

// Instrument wraps next.
func Instrument(next classification.Classifier, mode classification.Mode, format grievance.TicketFormat, tracer trace.Tracer) *InstrumentedClassifier {
	return &InstrumentedClassifier{next: next, mode: mode, format: format, tracer: tracer}
}

// Mode reports which implementation is wrapped.
func (c *InstrumentedClassifier) Mode() classification.Mode {
	return c.mode
}

// Classify implements classification.Classifier.
func (c *InstrumentedClassifier) Classify(ctx context.Context, message string, history []classification.HistoryEntry) (classification.Decision, error) {
	ctx, span := c.tracer.Start(ctx, "classification.classify",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("classifier.mode", string(c.mode)),
			attribute.Int("classifier.history_length", len(history)),
		),
	)
	defer span.End()

	start := time.Now()
	decision, err := c.next.Classify(ctx, message, history)
	if err == nil {
		err = decision.Validate(c.format)
	}
	elapsed := time.Since(start).Seconds()

	if err != nil {
		err = classification.Failure(err)
		outcome := outcomeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		metrics.RecordClassification(string(c.mode), "", outcome, elapsed)
		return classification.Decision{}, err
	}

	span.SetAttributes(attribute.String("classifier.intent", string(decision.Intent)))
	span.SetStatus(codes.Ok, "")
	metrics.RecordClassification(string(c.mode), string(decision.Intent), outcomeOK, elapsed)
	return decision, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, classification.ErrMalformedDecision):
		return outcomeMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeFailure
	}
}
