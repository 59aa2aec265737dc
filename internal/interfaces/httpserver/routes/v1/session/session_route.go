package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	sessionrequests "github.com/jalshakti/sahayak/internal/interfaces/httpserver/requests/session"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses"
	sessionresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/session"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// maxSpeechUpload matches the Whisper upload ceiling.
const maxSpeechUpload = 25 << 20

type SessionRoute struct {
	handler *handlers.SessionHandler
}

func NewSessionRoute(handler *handlers.SessionHandler) *SessionRoute {
	return &SessionRoute{handler: handler}
}

func (route *SessionRoute) RegisterRouter(router gin.IRouter) {
	sessions := router.Group("/sessions")
	sessions.POST("", route.createSession)
	sessions.GET("/:session_id", route.getSession)
	sessions.DELETE("/:session_id", route.deleteSession)
	sessions.POST("/:session_id/messages", route.sendMessage)
	sessions.POST("/:session_id/speech", route.sendSpeech)
}

// createSession godoc
// @Summary Start a citizen session
// @Description Opens a conversation. The transcript starts with the assistant's welcome message.
// @Tags Sessions API
// @Produce json
// @Success 201 {object} sessionresponses.SessionResponse "Session created"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/sessions [post]
func (route *SessionRoute) createSession(reqCtx *gin.Context) {
	snapshot, err := route.handler.CreateSession(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to create session")
		return
	}
	reqCtx.JSON(http.StatusCreated, sessionresponses.NewSessionResponse(snapshot))
}

// getSession godoc
// @Summary Get a session
// @Description Returns the transcript and whether a reply is still being prepared.
// @Tags Sessions API
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} sessionresponses.SessionResponse "Session snapshot"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Router /v1/sessions/{session_id} [get]
func (route *SessionRoute) getSession(reqCtx *gin.Context) {
	snapshot, err := route.handler.GetSession(reqCtx.Request.Context(), reqCtx.Param("session_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get session")
		return
	}
	reqCtx.JSON(http.StatusOK, sessionresponses.NewSessionResponse(snapshot))
}

// deleteSession godoc
// @Summary End a session
// @Description Closes the session. A reply still in flight is discarded.
// @Tags Sessions API
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} sessionresponses.DeletedResponse "Session closed"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Router /v1/sessions/{session_id} [delete]
func (route *SessionRoute) deleteSession(reqCtx *gin.Context) {
	sessionID := reqCtx.Param("session_id")
	if err := route.handler.DeleteSession(reqCtx.Request.Context(), sessionID); err != nil {
		responses.HandleError(reqCtx, err, "failed to delete session")
		return
	}
	reqCtx.JSON(http.StatusOK, sessionresponses.NewDeletedResponse(sessionID))
}

// sendMessage godoc
// @Summary Send a citizen message
// @Description Classifies the message and answers it. Filing a grievance appends it to the ledger
// @Description and the reply carries the assigned ticket id.
// @Tags Sessions API
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body sessionrequests.SendMessageRequest true "Message"
// @Success 200 {object} sessionresponses.TurnResponse "Assistant reply"
// @Failure 400 {object} responses.ErrorResponse "Empty message"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Failure 409 {object} responses.ErrorResponse "A reply is still pending"
// @Router /v1/sessions/{session_id}/messages [post]
func (route *SessionRoute) sendMessage(reqCtx *gin.Context) {
	var req sessionrequests.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "request body must contain a non-empty text field")
		return
	}

	result, err := route.handler.SendMessage(reqCtx.Request.Context(), reqCtx.Param("session_id"), req.Text)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to send message")
		return
	}
	reqCtx.JSON(http.StatusOK, sessionresponses.NewTurnResponse("", result.Reply, result.Session))
}

// sendSpeech godoc
// @Summary Send a spoken citizen message
// @Description Transcribes the recording and handles the text like a typed message.
// @Tags Sessions API
// @Accept multipart/form-data
// @Produce json
// @Param session_id path string true "Session ID"
// @Param audio formData file true "Recorded audio"
// @Success 200 {object} sessionresponses.TurnResponse "Assistant reply with transcript"
// @Failure 400 {object} responses.ErrorResponse "Missing audio or nothing recognised"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Failure 409 {object} responses.ErrorResponse "A reply is still pending"
// @Failure 501 {object} responses.ErrorResponse "Speech input not enabled"
// @Router /v1/sessions/{session_id}/speech [post]
func (route *SessionRoute) sendSpeech(reqCtx *gin.Context) {
	reqCtx.Request.Body = http.MaxBytesReader(reqCtx.Writer, reqCtx.Request.Body, maxSpeechUpload)
	header, err := reqCtx.FormFile(sessionrequests.SpeechFormField)
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "multipart field 'audio' is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "could not read uploaded audio")
		return
	}
	defer file.Close()

	result, err := route.handler.SendSpeech(reqCtx.Request.Context(), reqCtx.Param("session_id"), header.Filename, file)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to send speech")
		return
	}
	reqCtx.JSON(http.StatusOK, sessionresponses.NewTurnResponse(result.Transcript, result.Reply, result.Session))
}
