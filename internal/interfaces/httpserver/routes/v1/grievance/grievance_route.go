package grievance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	grievancerequests "github.com/jalshakti/sahayak/internal/interfaces/httpserver/requests/grievance"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses"
	grievanceresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/grievance"
	"github.com/jalshakti/sahayak/internal/utils/platformerrors"
)

const defaultRecent = 5

type GrievanceRoute struct {
	handler *handlers.GrievanceHandler
}

func NewGrievanceRoute(handler *handlers.GrievanceHandler) *GrievanceRoute {
	return &GrievanceRoute{handler: handler}
}

func (route *GrievanceRoute) RegisterRouter(router gin.IRouter) {
	grievances := router.Group("/grievances")
	grievances.GET("", route.listGrievances)
	grievances.GET("/:ticket_id", route.getGrievance)
	router.GET("/dashboard", route.getDashboard)
}

// listGrievances godoc
// @Summary List grievances
// @Description Returns every grievance in the ledger, most recent first.
// @Tags Grievances API
// @Produce json
// @Success 200 {object} grievanceresponses.GrievanceListResponse "Ledger snapshot"
// @Router /v1/grievances [get]
func (route *GrievanceRoute) listGrievances(reqCtx *gin.Context) {
	records := route.handler.ListGrievances(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, grievanceresponses.NewGrievanceListResponse(records))
}

// getGrievance godoc
// @Summary Get a grievance
// @Description Looks a grievance up by ticket id. Matching ignores case.
// @Tags Grievances API
// @Produce json
// @Param ticket_id path string true "Ticket ID, for example JSS-5821"
// @Success 200 {object} grievanceresponses.GrievanceResponse "Grievance"
// @Failure 404 {object} responses.ErrorResponse "Grievance not found"
// @Router /v1/grievances/{ticket_id} [get]
func (route *GrievanceRoute) getGrievance(reqCtx *gin.Context) {
	g, err := route.handler.GetGrievance(reqCtx.Request.Context(), reqCtx.Param("ticket_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get grievance")
		return
	}
	reqCtx.JSON(http.StatusOK, grievanceresponses.NewGrievanceResponse(g))
}

// getDashboard godoc
// @Summary Dashboard aggregates
// @Description Totals by status and category plus the most recent grievances.
// @Tags Grievances API
// @Produce json
// @Param recent query int false "Number of recent grievances to include (default 5)"
// @Success 200 {object} grievanceresponses.DashboardResponse "Dashboard"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Router /v1/dashboard [get]
func (route *GrievanceRoute) getDashboard(reqCtx *gin.Context) {
	var params grievancerequests.DashboardQueryParams
	if err := reqCtx.ShouldBindQuery(&params); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "recent must be between 0 and 100")
		return
	}
	recent := defaultRecent
	if params.Recent != nil {
		recent = *params.Recent
	}
	stats := route.handler.Dashboard(reqCtx.Request.Context(), recent)
	reqCtx.JSON(http.StatusOK, grievanceresponses.NewDashboardResponse(stats))
}
