package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

const (
	stubFilingReply = "Thank you for reporting the pipeline leakage in Kharadi, Pune. " +
		"Your grievance has been registered with ID " + classification.TicketPlaceholder + ". We will look into it shortly."
	stubAskForIDReply = "Please share your grievance ID (for example %s) so I can look up its status."
)

// StubClassifier is a demo stand-in used when no classifier API key is
// configured. It does not understand the message: it recognises an embedded
// ticket id or the word "status" and otherwise always files the same
// illustrative pipeline leakage.
type StubClassifier struct {
	format  grievance.TicketFormat
	latency time.Duration
}

// NewStubClassifier returns the demo classifier; latency simulates a network round trip.
func NewStubClassifier(format grievance.TicketFormat, latency time.Duration) *StubClassifier {
	return &StubClassifier{format: format, latency: latency}
}

// Classify implements classification.Classifier.
func (s *StubClassifier) Classify(ctx context.Context, message string, _ []classification.HistoryEntry) (classification.Decision, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return classification.Decision{}, classification.Failure(ctx.Err())
		case <-timer.C:
		}
	}

	if id, ok := s.format.Find(message); ok {
		return classification.Decision{
			Intent:    classification.IntentStatusCheck,
			TicketID:  id,
			ReplyText: fmt.Sprintf("Checking status for %s.", id),
		}, nil
	}

	if strings.Contains(strings.ToLower(message), "status") {
		return classification.Decision{
			Intent:    classification.IntentGeneralQuery,
			ReplyText: fmt.Sprintf(stubAskForIDReply, s.format.Format(1234)),
		}, nil
	}

	return classification.Decision{
		Intent: classification.IntentGrievanceFiling,
		Grievance: &grievance.Draft{
			Category: grievance.CategoryPipelineLeakage,
			Location: "Kharadi, Pune",
			Summary:  "Water pipe leaking on the main road for 2 days.",
		},
		ReplyText: stubFilingReply,
	}, nil
}
