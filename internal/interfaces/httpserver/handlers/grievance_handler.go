package handlers

import (
	"context"
	"errors"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// GrievanceLedger is the ledger surface exposed over HTTP.
type GrievanceLedger interface {
	All() []grievance.Grievance
	FindByID(id string) (grievance.Grievance, bool)
	SetStatus(id string, status grievance.Status) (grievance.Grievance, error)
}

// GrievanceHandler serves ledger reads, dashboard aggregates and status updates.
type GrievanceHandler struct {
	ledger GrievanceLedger
}

func NewGrievanceHandler(ledger GrievanceLedger) *GrievanceHandler {
	return &GrievanceHandler{ledger: ledger}
}

// ListGrievances returns every grievance, most recent first.
func (h *GrievanceHandler) ListGrievances(ctx context.Context) []grievance.Grievance {
	return h.ledger.All()
}

// GetGrievance looks a grievance up by ticket id, ignoring case.
func (h *GrievanceHandler) GetGrievance(ctx context.Context, ticketID string) (grievance.Grievance, error) {
	g, ok := h.ledger.FindByID(ticketID)
	if !ok {
		return grievance.Grievance{}, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"grievance not found", grievance.ErrNotFound, map[string]any{"ticket_id": ticketID})
	}
	return g, nil
}

// Dashboard aggregates the ledger for the official view.
func (h *GrievanceHandler) Dashboard(ctx context.Context, recent int) grievance.Stats {
	return grievance.Summarize(h.ledger.All(), recent)
}

// UpdateStatus moves a grievance through its administrative lifecycle.
func (h *GrievanceHandler) UpdateStatus(ctx context.Context, ticketID, rawStatus string) (grievance.Grievance, error) {
	status, err := grievance.ParseStatus(rawStatus)
	if err != nil {
		return grievance.Grievance{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, err.Error(), err)
	}
	g, err := h.ledger.SetStatus(ticketID, status)
	switch {
	case errors.Is(err, grievance.ErrNotFound):
		return grievance.Grievance{}, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"grievance not found", err, map[string]any{"ticket_id": ticketID})
	case err != nil:
		return grievance.Grievance{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update grievance status")
	}
	return g, nil
}
