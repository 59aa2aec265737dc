package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	grievancerequests "github.com/jalshakti/sahayak/internal/interfaces/httpserver/requests/grievance"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses"
	grievanceresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/grievance"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

// AdminRoute exposes operations for field officials.
type AdminRoute struct {
	grievances *handlers.GrievanceHandler
}

func NewAdminRoute(grievances *handlers.GrievanceHandler) *AdminRoute {
	return &AdminRoute{grievances: grievances}
}

// RegisterRouter registers admin routes under /admin prefix
func (r *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminGroup := router.Group("/admin")
	{
		adminGroup.PATCH("/grievances/:ticket_id/status", r.updateStatus)
	}
}

// updateStatus godoc
// @Summary Update grievance status
// @Description Moves a grievance to open, in-progress, resolved or closed. Labels such as "In Progress" are accepted.
// @Tags Admin API
// @Accept json
// @Produce json
// @Param ticket_id path string true "Ticket ID"
// @Param request body grievancerequests.UpdateStatusRequest true "New status"
// @Success 200 {object} grievanceresponses.GrievanceResponse "Updated grievance"
// @Failure 400 {object} responses.ErrorResponse "Unknown status"
// @Failure 404 {object} responses.ErrorResponse "Grievance not found"
// @Router /v1/admin/grievances/{ticket_id}/status [patch]
func (r *AdminRoute) updateStatus(reqCtx *gin.Context) {
	var req grievancerequests.UpdateStatusRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "request body must contain a status field")
		return
	}
	g, err := r.grievances.UpdateStatus(reqCtx.Request.Context(), reqCtx.Param("ticket_id"), req.Status)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to update grievance status")
		return
	}
	reqCtx.JSON(http.StatusOK, grievanceresponses.NewGrievanceResponse(g))
}
