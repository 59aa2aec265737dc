package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalshakti/sahayak/internal/config"
	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure/inference"
	"github.com/jalshakti/sahayak/internal/infrastructure/sessionstore"
	"github.com/jalshakti/sahayak/internal/infrastructure/speech"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	server *HttpServer
	ledger *grievance.Ledger
}

type fakeTranscriber struct {
	text string
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	if _, err := io.ReadAll(audio); err != nil {
		return "", err
	}
	return f.text, nil
}

func newTestEnv(t *testing.T, classifier classification.Classifier, transcriber speech.Transcriber, probes ...ReadinessProbe) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	format := grievance.NewTicketFormat("JSS")
	ledger, err := grievance.NewLedger(format,
		grievance.WithClock(func() time.Time { return fixedNow }),
		grievance.WithSeed(grievance.DefaultSeed(fixedNow)),
	)
	require.NoError(t, err)

	if classifier == nil {
		classifier = inference.NewStubClassifier(format, 0)
	}
	factory := conversation.NewFactory(classifier, ledger,
		conversation.Settings{HistoryWindow: 10, TurnTimeout: 5 * time.Second}, zerolog.Nop(), nil)
	store, err := sessionstore.NewLRUStore(16, factory, zerolog.Nop())
	require.NoError(t, err)

	grievanceHandler := handlers.NewGrievanceHandler(ledger)
	provider := handlers.NewProvider(
		handlers.NewSessionHandler(store, transcriber),
		grievanceHandler,
		handlers.NewViewHandler(grievanceHandler, handlers.Capabilities{
			ClassifierMode: classification.ModeStub,
			SpeechEnabled:  transcriber != nil,
			TicketPrefix:   format.Prefix(),
		}),
	)

	cfg := &config.Config{ServiceName: "sahayak", Environment: "test", ShutdownTimeout: time.Second}
	return &testEnv{
		server: New(cfg, zerolog.Nop(), routes.NewV1Route(provider), probes...),
		ledger: ledger,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type sessionBody struct {
	ID       string `json:"id"`
	Pending  bool   `json:"pending"`
	Messages []struct {
		ID     int64  `json:"id"`
		Sender string `json:"sender"`
		Text   string `json:"text"`
	} `json:"messages"`
}

type turnBody struct {
	Transcript string `json:"transcript"`
	Reply      struct {
		Sender string `json:"sender"`
		Text   string `json:"text"`
	} `json:"reply"`
	Session sessionBody `json:"session"`
}

type errorBody struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func (e *testEnv) createSession(t *testing.T) sessionBody {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[sessionBody](t, rec)
}

func TestCoreRoutes(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	for _, path := range []string{"/", "/healthz", "/readyz", "/metrics"} {
		rec := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.NotEmpty(t, env.do(t, http.MethodGet, "/healthz", nil).Header().Get("X-Request-Id"))
}

func TestReadyzReportsFailingProbe(t *testing.T) {
	env := newTestEnv(t, nil, nil, func(context.Context) error { return errors.New("broker down") })

	rec := env.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "broker down")
}

func TestCreateSessionStartsWithWelcome(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	session := env.createSession(t)
	assert.True(t, strings.HasPrefix(session.ID, "sess_"))
	require.Len(t, session.Messages, 1)
	assert.Equal(t, int64(1), session.Messages[0].ID)
	assert.Equal(t, "bot", session.Messages[0].Sender)
	assert.Equal(t, conversation.WelcomeText, session.Messages[0].Text)

	rec := env.do(t, http.MethodGet, "/v1/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[sessionBody](t, rec).Pending)
}

func TestSendMessageFilesGrievance(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	session := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/v1/sessions/"+session.ID+"/messages",
		map[string]string{"text": "There is a leak near my house"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	turn := decode[turnBody](t, rec)
	assert.Equal(t, "bot", turn.Reply.Sender)
	assert.Contains(t, turn.Reply.Text, "JSS-5822")
	assert.Len(t, turn.Session.Messages, 3)

	g, ok := env.ledger.FindByID("JSS-5822")
	require.True(t, ok)
	assert.Equal(t, grievance.CategoryPipelineLeakage, g.Category)
	assert.Equal(t, grievance.StatusOpen, g.Status)
}

func TestSendMessageStatusCheck(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	session := env.createSession(t)

	rec := env.do(t, http.MethodPost, "/v1/sessions/"+session.ID+"/messages",
		map[string]string{"text": "what is the status of jss-5821"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[turnBody](t, rec).Reply.Text, "'In Progress'")
}

func TestSendMessageErrors(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	session := env.createSession(t)

	tests := []struct {
		name     string
		path     string
		body     any
		status   int
		errorTyp string
	}{
		{"missing text", "/v1/sessions/" + session.ID + "/messages", map[string]string{}, http.StatusBadRequest, "validation_error"},
		{"blank text", "/v1/sessions/" + session.ID + "/messages", map[string]string{"text": "   "}, http.StatusBadRequest, "validation_error"},
		{"unknown session", "/v1/sessions/sess_missing/messages", map[string]string{"text": "hello"}, http.StatusNotFound, "not_found_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.errorTyp, body.Error.Type)
			assert.NotEmpty(t, body.Error.RequestID)
		})
	}

	rec := env.do(t, http.MethodGet, "/v1/sessions/"+session.ID, nil)
	assert.Len(t, decode[sessionBody](t, rec).Messages, 1, "rejected messages are not recorded")
}

type gatedClassifier struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedClassifier) Classify(context.Context, string, []classification.HistoryEntry) (classification.Decision, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return classification.Decision{Intent: classification.IntentGeneralQuery, ReplyText: "Namaste!"}, nil
}

func TestSendMessageWhilePendingConflicts(t *testing.T) {
	gate := &gatedClassifier{started: make(chan struct{}), release: make(chan struct{})}
	env := newTestEnv(t, gate, nil)
	session := env.createSession(t)
	path := "/v1/sessions/" + session.ID + "/messages"

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- env.do(t, http.MethodPost, path, map[string]string{"text": "hello"}) }()
	<-gate.started

	rec := env.do(t, http.MethodGet, "/v1/sessions/"+session.ID, nil)
	assert.True(t, decode[sessionBody](t, rec).Pending)

	rec = env.do(t, http.MethodPost, path, map[string]string{"text": "hello again"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(gate.release)
	select {
	case rec := <-first:
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Namaste!", decode[turnBody](t, rec).Reply.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("first message did not complete")
	}
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	session := env.createSession(t)

	rec := env.do(t, http.MethodDelete, "/v1/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodDelete, "/v1/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func speechRequest(t *testing.T, path string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if withFile {
		part, err := writer.CreateFormFile("audio", "note.webm")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-audio"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSendSpeech(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		session := env.createSession(t)

		rec := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rec, speechRequest(t, "/v1/sessions/"+session.ID+"/speech", true))
		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})

	t.Run("missing audio", func(t *testing.T) {
		env := newTestEnv(t, nil, fakeTranscriber{text: "hello"})
		session := env.createSession(t)

		rec := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rec, speechRequest(t, "/v1/sessions/"+session.ID+"/speech", false))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("transcribed", func(t *testing.T) {
		env := newTestEnv(t, nil, fakeTranscriber{text: "status of JSS-5819"})
		session := env.createSession(t)

		rec := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rec, speechRequest(t, "/v1/sessions/"+session.ID+"/speech", true))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		turn := decode[turnBody](t, rec)
		assert.Equal(t, "status of JSS-5819", turn.Transcript)
		assert.Contains(t, turn.Reply.Text, "JSS-5819")
		assert.Equal(t, "status of JSS-5819", turn.Session.Messages[1].Text)
	})
}

func TestGrievanceRoutes(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/v1/grievances", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Total int `json:"total"`
		Data  []struct {
			ID          string `json:"id"`
			StatusLabel string `json:"status_label"`
		} `json:"data"`
	}](t, rec)
	assert.Equal(t, 4, list.Total)
	assert.Equal(t, "JSS-5821", list.Data[0].ID)

	rec = env.do(t, http.MethodGet, "/v1/grievances/jss-5820", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"JSS-5820"`)

	rec = env.do(t, http.MethodGet, "/v1/grievances/JSS-0001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/v1/dashboard?recent=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode[struct {
		Total  int `json:"total"`
		Recent []struct {
			ID string `json:"id"`
		} `json:"recent"`
	}](t, rec)
	assert.Equal(t, 4, dashboard.Total)
	assert.Len(t, dashboard.Recent, 2)

	rec = env.do(t, http.MethodGet, "/v1/dashboard?recent=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewSelector(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/v1/views/citizen", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	citizen := decode[struct {
		View         string `json:"view"`
		Capabilities *struct {
			ClassifierMode string `json:"classifier_mode"`
			SpeechEnabled  bool   `json:"speech_enabled"`
			Categories     []any  `json:"categories"`
		} `json:"capabilities"`
		Dashboard any `json:"dashboard"`
	}](t, rec)
	assert.Equal(t, "citizen", citizen.View)
	require.NotNil(t, citizen.Capabilities)
	assert.Equal(t, "stub", citizen.Capabilities.ClassifierMode)
	assert.False(t, citizen.Capabilities.SpeechEnabled)
	assert.Len(t, citizen.Capabilities.Categories, len(grievance.Categories))
	assert.Nil(t, citizen.Dashboard)

	rec = env.do(t, http.MethodGet, "/v1/views/OFFICIAL", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	official := decode[struct {
		View      string `json:"view"`
		Dashboard *struct {
			Total int `json:"total"`
		} `json:"dashboard"`
	}](t, rec)
	assert.Equal(t, "official", official.View)
	require.NotNil(t, official.Dashboard)
	assert.Equal(t, 4, official.Dashboard.Total)

	rec = env.do(t, http.MethodGet, "/v1/views/engineer", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPatch, "/v1/admin/grievances/jss-5819/status", map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status_label":"Resolved"`)
	g, ok := env.ledger.FindByID("JSS-5819")
	require.True(t, ok)
	assert.Equal(t, grievance.StatusResolved, g.Status)

	rec = env.do(t, http.MethodPatch, "/v1/admin/grievances/JSS-5820/status", map[string]string{"status": "escalated"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/v1/admin/grievances/JSS-0001/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
