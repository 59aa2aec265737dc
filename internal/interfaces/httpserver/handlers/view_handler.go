package handlers

import (
	"context"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

const dashboardRecent = 5

// Capabilities tells the citizen front end what the server can do.
type Capabilities struct {
	ClassifierMode classification.Mode  `json:"classifier_mode"`
	SpeechEnabled  bool                 `json:"speech_enabled"`
	TicketPrefix   string               `json:"ticket_prefix"`
	Categories     []grievance.Category `json:"categories"`
}

// ViewPayload is the data backing one presentation view.
type ViewPayload struct {
	View         conversation.View `json:"view"`
	Capabilities *Capabilities     `json:"capabilities,omitempty"`
	Dashboard    *grievance.Stats  `json:"dashboard,omitempty"`
}

// ViewHandler resolves the citizen/official view selector.
type ViewHandler struct {
	grievances   *GrievanceHandler
	capabilities Capabilities
}

func NewViewHandler(grievances *GrievanceHandler, capabilities Capabilities) *ViewHandler {
	if capabilities.Categories == nil {
		capabilities.Categories = grievance.Categories
	}
	return &ViewHandler{grievances: grievances, capabilities: capabilities}
}

// GetView returns the payload for the requested view.
func (h *ViewHandler) GetView(ctx context.Context, rawView string) (ViewPayload, error) {
	view, err := conversation.ParseView(rawView)
	if err != nil {
		return ViewPayload{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"view must be citizen or official", err)
	}

	payload := ViewPayload{View: view}
	switch view {
	case conversation.ViewCitizen:
		capabilities := h.capabilities
		payload.Capabilities = &capabilities
	case conversation.ViewOfficial:
		stats := h.grievances.Dashboard(ctx, dashboardRecent)
		payload.Dashboard = &stats
	}
	return payload, nil
}
