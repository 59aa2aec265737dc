package classification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

// ===============================================
// Intent & Decision Types
// ===============================================

// Intent is what the classifier decided the citizen wants.
type Intent string

const (
	IntentGrievanceFiling Intent = "grievance-filing"
	IntentStatusCheck     Intent = "status-check"
	IntentGeneralQuery    Intent = "general-query"
)

// Intents lists every intent the orchestrator knows how to apply.
var Intents = []Intent{IntentGrievanceFiling, IntentStatusCheck, IntentGeneralQuery}

// TicketPlaceholder is substituted with the newly issued ticket id in filing replies.
const TicketPlaceholder = "{{TICKET_ID}}"

// Sender values used in history entries.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// HistoryEntry is one prior transcript line sent to the classifier as context.
type HistoryEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Decision is the structured outcome of classifying one citizen message.
// Grievance is set only for filings and TicketID only for status checks.
type Decision struct {
	Intent    Intent           `json:"intent" validate:"required,oneof=grievance-filing status-check general-query"`
	Grievance *grievance.Draft `json:"grievance,omitempty"`
	TicketID  string           `json:"ticket_id,omitempty"`
	ReplyText string           `json:"reply_text" validate:"required"`
}

// Mode identifies which gateway implementation is answering.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeStub   Mode = "stub"
)

// ===============================================
// Classifier Contract
// ===============================================

// Classifier turns a citizen message plus recent history into a Decision.
// Implementations must return either a Decision that passes Validate or an
// error satisfying errors.Is(err, ErrClassificationFailure).
type Classifier interface {
	Classify(ctx context.Context, message string, history []HistoryEntry) (Decision, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, message string, history []HistoryEntry) (Decision, error)

func (f ClassifierFunc) Classify(ctx context.Context, message string, history []HistoryEntry) (Decision, error) {
	return f(ctx, message, history)
}

// ===============================================
// Errors
// ===============================================

var (
	ErrClassificationFailure = errors.New("classification failed")
	ErrMalformedDecision     = fmt.Errorf("%w: malformed decision", ErrClassificationFailure)
)

// Failure wraps err so that it satisfies errors.Is(err, ErrClassificationFailure).
func Failure(err error) error {
	if err == nil || errors.Is(err, ErrClassificationFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrClassificationFailure, err)
}

// Malformed builds an ErrMalformedDecision with a reason.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDecision, fmt.Sprintf(format, args...))
}

// ===============================================
// Validation
// ===============================================

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the decision shape against the intent it declares.
func (d Decision) Validate(format grievance.TicketFormat) error {
	if err := validate.Struct(d); err != nil {
		return Malformed("%v", err)
	}

	switch d.Intent {
	case IntentGrievanceFiling:
		if d.Grievance == nil {
			return Malformed("grievance-filing without grievance details")
		}
		if err := d.Grievance.Validate(); err != nil {
			return Malformed("%v", err)
		}
		if d.TicketID != "" {
			return Malformed("grievance-filing must not carry a ticket id")
		}
	case IntentStatusCheck:
		if d.TicketID == "" {
			return Malformed("status-check without ticket id")
		}
		if !format.Match(d.TicketID) {
			return Malformed("ticket id %q does not match %s-<number>", d.TicketID, format.Prefix())
		}
		if d.Grievance != nil {
			return Malformed("status-check must not carry grievance details")
		}
	case IntentGeneralQuery:
		if d.Grievance != nil || d.TicketID != "" {
			return Malformed("general-query must not carry grievance details or ticket id")
		}
	}
	return nil
}

// FillTicketID replaces every ticket placeholder in reply with id.
func FillTicketID(reply, id string) string {
	return strings.ReplaceAll(reply, TicketPlaceholder, id)
}

// TruncateHistory returns a copy of the last window entries of history.
func TruncateHistory(history []HistoryEntry, window int) []HistoryEntry {
	if window <= 0 || len(history) == 0 {
		return []HistoryEntry{}
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]HistoryEntry, len(history))
	copy(out, history)
	return out
}
