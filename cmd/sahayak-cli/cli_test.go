package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDesk serves canned responses in the server's JSON shapes.
type fakeDesk struct {
	mu       sync.Mutex
	messages []string
	deleted  []string
}

func (f *fakeDesk) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	session := map[string]any{
		"id":     "sess_1",
		"object": "session",
		"messages": []map[string]any{
			{"id": 1, "sender": "bot", "text": "Welcome to Jal Shakti Sahayak!"},
		},
	}

	mux.HandleFunc("POST /v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, session)
	})
	mux.HandleFunc("DELETE /v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "deleted": true})
	})
	mux.HandleFunc("POST /v1/sessions/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.messages = append(f.messages, body.Text)
		f.mu.Unlock()
		if body.Text == "busy" {
			writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]any{
				"message": "a reply is still being prepared", "type": "conflict_error",
			}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "session.turn",
			"reply":  map[string]any{"id": 3, "sender": "bot", "text": "echo " + body.Text},
		})
	})
	mux.HandleFunc("GET /v1/grievances/{id}", func(w http.ResponseWriter, r *http.Request) {
		if strings.ToUpper(r.PathValue("id")) != "JSS-5821" {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{
				"message": "grievance not found", "type": "not_found_error",
			}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "JSS-5821", "status_label": "In Progress", "category_label": "Pipeline Leakage",
			"location": "Sector 15, Chandigarh", "summary": "Major pipeline leak near the main market square.",
			"submitted_at": time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC),
		})
	})
	mux.HandleFunc("GET /v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 4, "open": 1, "in_progress": 1, "resolved": 2,
			"by_category": []map[string]any{{"category": "billing-issue", "label": "Billing Issue", "count": 1}},
		})
	})
	mux.HandleFunc("PATCH /v1/admin/grievances/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "status": body.Status, "status_label": "Resolved"})
	})
	return mux
}

func newFakeDesk(t *testing.T) (*fakeDesk, *httptest.Server) {
	t.Helper()
	desk := &fakeDesk{}
	server := httptest.NewServer(desk.handler(t))
	t.Cleanup(server.Close)
	return desk, server
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = rootCmd.PersistentFlags().Set("json", "false")
		_ = rootCmd.PersistentFlags().Set("server", "")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestChatSession(t *testing.T) {
	desk, server := newFakeDesk(t)
	client := newAPIClient(server.URL, time.Second)
	defer client.Close()

	var out bytes.Buffer
	err := chat(context.Background(), client, strings.NewReader("hello\n\nbusy\n/quit\nignored\n"), &out)
	require.NoError(t, err)

	transcript := out.String()
	assert.Contains(t, transcript, "sahayak> Welcome to Jal Shakti Sahayak!")
	assert.Contains(t, transcript, "sahayak> echo hello")
	assert.Contains(t, transcript, "sahayak! a reply is still being prepared")
	assert.Equal(t, []string{"hello", "busy"}, desk.messages)
	assert.Equal(t, []string{"sess_1"}, desk.deleted)
}

func TestStatusCommand(t *testing.T) {
	_, server := newFakeDesk(t)

	out, err := runCLI(t, "", "status", "jss-5821", "--server", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "JSS-5821  [In Progress]")
	assert.Contains(t, out, "Sector 15, Chandigarh")

	_, err = runCLI(t, "", "status", "JSS-1", "--server", server.URL)
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found_error", apiErr.Type)
}

func TestServerURLFromEnvironment(t *testing.T) {
	_, server := newFakeDesk(t)
	t.Setenv(serverURLEnv, server.URL)

	out, err := runCLI(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 4")
	assert.Contains(t, out, "Billing Issue")
}

func TestSetStatusJSON(t *testing.T) {
	_, server := newFakeDesk(t)

	out, err := runCLI(t, "", "set-status", "JSS-5819", "resolved", "--server", server.URL, "--json")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "resolved", body["status"])
}

func TestSeedCommands(t *testing.T) {
	out, err := runCLI(t, "", "seed", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "JSS-5818")

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	out, err = runCLI(t, "", "seed", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 grievances")

	out, err = runCLI(t, "", "seed", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"grievances"`)
}
