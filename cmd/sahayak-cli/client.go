package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	grievanceresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/grievance"
	sessionresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/session"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// apiError is a non-2xx answer from the server.
type apiError struct {
	Status  int
	Type    string
	Message string
}

func (e *apiError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &apiClient{http: client}
}

func (c *apiClient) Close() error {
	return c.http.Close()
}

func (c *apiClient) do(ctx context.Context, method, path string, body, result any, pathParams map[string]string) error {
	var errBody platformerrors.HTTPErrorResponse
	req := c.http.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetResult(result).
		SetError(&errBody)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &apiError{Status: resp.StatusCode()}
		if errBody.Error != nil {
			apiErr.Type = errBody.Error.Type
			apiErr.Message = errBody.Error.Message
		} else {
			apiErr.Message = resp.String()
		}
		return apiErr
	}
	return nil
}

func (c *apiClient) CreateSession(ctx context.Context) (*sessionresponses.SessionResponse, error) {
	var out sessionresponses.SessionResponse
	if err := c.do(ctx, resty.MethodPost, "/v1/sessions", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) DeleteSession(ctx context.Context, sessionID string) error {
	var out sessionresponses.DeletedResponse
	return c.do(ctx, resty.MethodDelete, "/v1/sessions/{session_id}", nil, &out,
		map[string]string{"session_id": sessionID})
}

func (c *apiClient) SendMessage(ctx context.Context, sessionID, text string) (*sessionresponses.TurnResponse, error) {
	var out sessionresponses.TurnResponse
	err := c.do(ctx, resty.MethodPost, "/v1/sessions/{session_id}/messages",
		map[string]string{"text": text}, &out, map[string]string{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) GetGrievance(ctx context.Context, ticketID string) (*grievanceresponses.GrievanceResponse, error) {
	var out grievanceresponses.GrievanceResponse
	err := c.do(ctx, resty.MethodGet, "/v1/grievances/{ticket_id}", nil, &out,
		map[string]string{"ticket_id": ticketID})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) ListGrievances(ctx context.Context) (*grievanceresponses.GrievanceListResponse, error) {
	var out grievanceresponses.GrievanceListResponse
	if err := c.do(ctx, resty.MethodGet, "/v1/grievances", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Dashboard(ctx context.Context) (*grievanceresponses.DashboardResponse, error) {
	var out grievanceresponses.DashboardResponse
	if err := c.do(ctx, resty.MethodGet, "/v1/dashboard", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) UpdateStatus(ctx context.Context, ticketID, status string) (*grievanceresponses.GrievanceResponse, error) {
	var out grievanceresponses.GrievanceResponse
	err := c.do(ctx, resty.MethodPatch, "/v1/admin/grievances/{ticket_id}/status",
		map[string]string{"status": status}, &out, map[string]string{"ticket_id": ticketID})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
