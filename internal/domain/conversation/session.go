package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/pkg/telemetry"
)

// Ledger is the part of the grievance ledger a conversation needs.
type Ledger interface {
	Append(draft grievance.Draft) (grievance.Grievance, error)
	FindByID(id string) (grievance.Grievance, bool)
}

// Settings tunes every session built by a Factory.
type Settings struct {
	HistoryWindow int
	TurnTimeout   time.Duration
}

// Factory builds sessions that share one classifier and one ledger.
type Factory struct {
	classifier classification.Classifier
	ledger     Ledger
	settings   Settings
	now        func() time.Time
	log        zerolog.Logger
	sanitizer  *telemetry.Sanitizer
}

// NewFactory wires the collaborators shared by all sessions.
func NewFactory(classifier classification.Classifier, ledger Ledger, settings Settings, log zerolog.Logger, sanitizer *telemetry.Sanitizer) *Factory {
	return &Factory{
		classifier: classifier,
		ledger:     ledger,
		settings:   settings,
		now:        time.Now,
		log:        log.With().Str("component", "conversation").Logger(),
		sanitizer:  sanitizer,
	}
}

// WithClock replaces the factory time source; intended for tests.
func (f *Factory) WithClock(now func() time.Time) *Factory {
	f.now = now
	return f
}

// NewSession opens a session whose transcript starts with the welcome message.
func (f *Factory) NewSession(id string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	now := f.now()
	s := &Session{
		id:         id,
		factory:    f,
		ctx:        ctx,
		cancel:     cancel,
		createdAt:  now,
		lastActive: now,
	}
	s.appendLocked(SenderBot, WelcomeText)
	return s
}

// Snapshot is a point-in-time copy of session state.
type Snapshot struct {
	ID         string    `json:"id"`
	Messages   []Message `json:"messages"`
	Pending    bool      `json:"pending"`
	Closed     bool      `json:"closed"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Session is one citizen conversation. At most one turn is in flight at a time;
// the classifier call runs without holding the session lock.
type Session struct {
	id      string
	factory *Factory

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	messages   []Message
	lastSeq    int64
	pending    bool
	closed     bool
	createdAt  time.Time
	lastActive time.Time
}

// ID returns the session handle.
func (s *Session) ID() string {
	return s.id
}

// Send processes one citizen message and returns the bot reply appended to the
// transcript. Classifier failures become the apology reply, not an error.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Message{}, ErrSessionClosed
	}
	if s.pending {
		s.mu.Unlock()
		return Message{}, ErrTurnInProgress
	}
	history := s.historyLocked()
	s.appendLocked(SenderUser, text)
	s.pending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	decision, classifyErr := s.classify(ctx, text, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log().Debug().Str("intent", string(decision.Intent)).Msg("discarding decision for closed session")
		return Message{}, ErrSessionClosed
	}

	reply := ApologyText
	if classifyErr != nil {
		log := s.log()
		var event *zerolog.Event
		msg := "classification failed"
		if errors.Is(classifyErr, context.DeadlineExceeded) {
			event, msg = log.Warn(), "classification timed out"
		} else {
			event = log.Error()
		}
		event.Err(classifyErr).
			Str("message", s.factory.sanitizer.SanitizeText(text)).
			Msg(msg)
	} else if applied, err := s.apply(decision); err != nil {
		s.log().Error().Err(err).Str("intent", string(decision.Intent)).Msg("failed to apply decision")
	} else {
		reply = applied
	}

	return s.appendLocked(SenderBot, reply), nil
}

// classify runs the classifier under the session lifetime and the turn timeout.
// The caller's values (trace, request id) are kept but not its cancellation: a
// turn outlives a dropped request and its reply is read from the transcript.
func (s *Session) classify(ctx context.Context, text string, history []classification.HistoryEntry) (classification.Decision, error) {
	callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()
	if timeout := s.factory.settings.TurnTimeout; timeout > 0 {
		var cancelTimeout context.CancelFunc
		callCtx, cancelTimeout = context.WithTimeout(callCtx, timeout)
		defer cancelTimeout()
	}

	window := classification.TruncateHistory(history, s.factory.settings.HistoryWindow)
	decision, err := s.factory.classifier.Classify(callCtx, text, window)
	if err != nil {
		return classification.Decision{}, classification.Failure(err)
	}
	return decision, nil
}

// apply performs the side effect for a decision and returns the reply text.
func (s *Session) apply(decision classification.Decision) (string, error) {
	switch decision.Intent {
	case classification.IntentGrievanceFiling:
		if decision.Grievance == nil {
			return "", classification.Malformed("grievance-filing without grievance details")
		}
		filed, err := s.factory.ledger.Append(*decision.Grievance)
		if err != nil {
			return "", err
		}
		s.log().Info().Str("ticket_id", filed.ID).Str("category", string(filed.Category)).Msg("grievance filed")
		return classification.FillTicketID(decision.ReplyText, filed.ID), nil
	case classification.IntentStatusCheck:
		found, ok := s.factory.ledger.FindByID(decision.TicketID)
		if !ok {
			return NotFoundReply(decision.TicketID), nil
		}
		return StatusReply(found), nil
	case classification.IntentGeneralQuery:
		return decision.ReplyText, nil
	default:
		return "", classification.Malformed("unknown intent %q", decision.Intent)
	}
}

// Close ends the session; an in-flight turn is cancelled and its result discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// CloseIfIdle closes the session when it has no turn in flight and its last
// activity is before cutoff. The check and the close happen under one lock, so a
// turn that has started is never cut off and one that has not yet started sees
// ErrSessionClosed before reaching the classifier.
func (s *Session) CloseIfIdle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending || !s.lastActive.Before(cutoff) {
		return false
	}
	s.closed = true
	s.cancel()
	return true
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Transcript returns a copy of all messages in order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Pending reports whether a turn is awaiting its reply.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastActive is the time of the latest transcript append.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot copies the full session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.id,
		Messages:   append([]Message(nil), s.messages...),
		Pending:    s.pending,
		Closed:     s.closed,
		CreatedAt:  s.createdAt,
		LastActive: s.lastActive,
	}
}

func (s *Session) historyLocked() []classification.HistoryEntry {
	history := make([]classification.HistoryEntry, len(s.messages))
	for i, m := range s.messages {
		history[i] = classification.HistoryEntry{Sender: string(m.Sender), Text: m.Text}
	}
	return history
}

func (s *Session) appendLocked(sender Sender, text string) Message {
	s.lastSeq++
	now := s.factory.now()
	msg := Message{ID: s.lastSeq, Sender: sender, Text: text, CreatedAt: now}
	s.messages = append(s.messages, msg)
	s.lastActive = now
	return msg
}

func (s *Session) log() *zerolog.Logger {
	l := s.factory.log.With().Str("session_id", s.factory.sanitizer.SanitizeID(s.id)).Logger()
	return &l
}
