package conversation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

// Sender identifies who authored a transcript line.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one line of a session transcript.
type Message struct {
	ID        int64     `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	WelcomeText = "Welcome to Jal Shakti Sahayak! I am your AI assistant for water-related grievances. " +
		"How can I help you today? You can file a new complaint, or check the status of an existing one by providing the ID."
	ApologyText = "I'm sorry, I encountered an error. Please try again."
)

// StatusReply renders the answer to a successful status lookup.
func StatusReply(g grievance.Grievance) string {
	return fmt.Sprintf("The status of grievance ID %s is currently '%s'. It was submitted for '%s'.",
		g.ID, g.Status.Label(), g.Summary)
}

// NotFoundReply renders the answer when no grievance matches the queried id.
func NotFoundReply(queried string) string {
	return fmt.Sprintf("Sorry, I could not find a grievance with ID %s. Please check the ID and try again.",
		strings.TrimSpace(queried))
}

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrTurnInProgress  = errors.New("a reply is still being prepared for this session")
	ErrSessionClosed   = errors.New("session is closed")
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownView     = errors.New("unknown view")
)

// View selects which presentation the client renders.
type View string

const (
	ViewCitizen  View = "citizen"
	ViewOfficial View = "official"
)

// ParseView validates a client supplied view name.
func ParseView(raw string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(raw))); v {
	case ViewCitizen, ViewOfficial:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
}
