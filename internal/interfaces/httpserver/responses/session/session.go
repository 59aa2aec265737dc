package sessionresponses

import (
	"time"

	"github.com/jalshakti/sahayak/internal/domain/conversation"
)

type MessageResponse struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Messages   []MessageResponse `json:"messages"`
	Pending    bool              `json:"pending"`
	Closed     bool              `json:"closed"`
	CreatedAt  time.Time         `json:"created_at"`
	LastActive time.Time         `json:"last_active"`
}

// TurnResponse is returned after a citizen message has been answered.
type TurnResponse struct {
	Object     string          `json:"object"`
	Transcript string          `json:"transcript,omitempty"`
	Reply      MessageResponse `json:"reply"`
	Session    SessionResponse `json:"session"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

func NewMessageResponse(m conversation.Message) MessageResponse {
	return MessageResponse{ID: m.ID, Sender: string(m.Sender), Text: m.Text, CreatedAt: m.CreatedAt}
}

func NewSessionResponse(s conversation.Snapshot) SessionResponse {
	messages := make([]MessageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, NewMessageResponse(m))
	}
	return SessionResponse{
		ID:         s.ID,
		Object:     "session",
		Messages:   messages,
		Pending:    s.Pending,
		Closed:     s.Closed,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive,
	}
}

func NewTurnResponse(transcript string, reply conversation.Message, s conversation.Snapshot) TurnResponse {
	return TurnResponse{
		Object:     "session.turn",
		Transcript: transcript,
		Reply:      NewMessageResponse(reply),
		Session:    NewSessionResponse(s),
	}
}

func NewDeletedResponse(id string) DeletedResponse {
	return DeletedResponse{ID: id, Object: "session.deleted", Deleted: true}
}
