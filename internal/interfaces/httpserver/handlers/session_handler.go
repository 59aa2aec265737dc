package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/infrastructure/speech"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// SessionHandler drives citizen conversations.
type SessionHandler struct {
	store       conversation.Store
	transcriber speech.Transcriber
}

// NewSessionHandler wires the session registry and the optional transcriber.
func NewSessionHandler(store conversation.Store, transcriber speech.Transcriber) *SessionHandler {
	if transcriber == nil {
		transcriber = speech.Disabled{}
	}
	return &SessionHandler{store: store, transcriber: transcriber}
}

// TurnResult is the outcome of one citizen message.
type TurnResult struct {
	Transcript string
	Reply      conversation.Message
	Session    conversation.Snapshot
}

// CreateSession opens a session whose transcript holds the welcome message.
func (h *SessionHandler) CreateSession(ctx context.Context) (conversation.Snapshot, error) {
	session, err := h.store.Create()
	if err != nil {
		return conversation.Snapshot{}, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create session")
	}
	return session.Snapshot(), nil
}

// GetSession returns the transcript and pending flag of a session.
func (h *SessionHandler) GetSession(ctx context.Context, sessionID string) (conversation.Snapshot, error) {
	session, err := h.lookup(ctx, sessionID)
	if err != nil {
		return conversation.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// DeleteSession ends a session; an in-flight reply is discarded.
func (h *SessionHandler) DeleteSession(ctx context.Context, sessionID string) error {
	if err := h.store.Delete(sessionID); err != nil {
		return conversationError(ctx, err)
	}
	return nil
}

// SendMessage runs one conversational turn.
func (h *SessionHandler) SendMessage(ctx context.Context, sessionID, text string) (TurnResult, error) {
	session, err := h.lookup(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	reply, err := session.Send(ctx, text)
	if err != nil {
		return TurnResult{}, conversationError(ctx, err)
	}
	return TurnResult{Reply: reply, Session: session.Snapshot()}, nil
}

// SendSpeech transcribes audio and runs it as a typed message.
func (h *SessionHandler) SendSpeech(ctx context.Context, sessionID, filename string, audio io.Reader) (TurnResult, error) {
	session, err := h.lookup(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	if session.Pending() {
		return TurnResult{}, conversationError(ctx, conversation.ErrTurnInProgress)
	}

	text, err := h.transcriber.Transcribe(ctx, filename, audio)
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		return TurnResult{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeNotImplemented,
			"speech input is not enabled on this server", err)
	case errors.Is(err, speech.ErrEmptyTranscript):
		return TurnResult{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"no speech was recognised in the recording", err)
	case err != nil:
		return TurnResult{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"speech transcription failed", err)
	}

	reply, err := session.Send(ctx, text)
	if err != nil {
		return TurnResult{}, conversationError(ctx, err)
	}
	return TurnResult{Transcript: text, Reply: reply, Session: session.Snapshot()}, nil
}

func (h *SessionHandler) lookup(ctx context.Context, sessionID string) (*conversation.Session, error) {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return nil, conversationError(ctx, err)
	}
	return session, nil
}

func conversationError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "message text must not be empty", err)
	case errors.Is(err, conversation.ErrTurnInProgress):
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "a reply is still being prepared, wait for it before sending again", err)
	case errors.Is(err, conversation.ErrSessionNotFound):
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "session not found", err)
	case errors.Is(err, conversation.ErrSessionClosed):
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "session has been closed", err)
	default:
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "conversation turn failed")
	}
}
