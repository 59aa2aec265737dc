package viewresponses

import (
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	grievanceresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/grievance"
)

type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type CapabilitiesResponse struct {
	ClassifierMode string           `json:"classifier_mode"`
	SpeechEnabled  bool             `json:"speech_enabled"`
	TicketPrefix   string           `json:"ticket_prefix"`
	Categories     []CategoryOption `json:"categories"`
}

// ViewResponse carries capabilities for the citizen view or the dashboard for the official view.
type ViewResponse struct {
	Object       string                                `json:"object"`
	View         string                                `json:"view"`
	Capabilities *CapabilitiesResponse                 `json:"capabilities,omitempty"`
	Dashboard    *grievanceresponses.DashboardResponse `json:"dashboard,omitempty"`
}

func NewViewResponse(payload handlers.ViewPayload) ViewResponse {
	resp := ViewResponse{Object: "view", View: string(payload.View)}
	if c := payload.Capabilities; c != nil {
		options := make([]CategoryOption, 0, len(c.Categories))
		for _, category := range c.Categories {
			options = append(options, CategoryOption{Value: string(category), Label: category.Label()})
		}
		resp.Capabilities = &CapabilitiesResponse{
			ClassifierMode: string(c.ClassifierMode),
			SpeechEnabled:  c.SpeechEnabled,
			TicketPrefix:   c.TicketPrefix,
			Categories:     options,
		}
	}
	if payload.Dashboard != nil {
		dashboard := grievanceresponses.NewDashboardResponse(*payload.Dashboard)
		resp.Dashboard = &dashboard
	}
	return resp
}
