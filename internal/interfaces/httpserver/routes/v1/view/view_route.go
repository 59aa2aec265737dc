package view

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses"
	viewresponses "github.com/jalshakti/sahayak/internal/interfaces/httpserver/responses/view"
)

type ViewRoute struct {
	handler *handlers.ViewHandler
}

func NewViewRoute(handler *handlers.ViewHandler) *ViewRoute {
	return &ViewRoute{handler: handler}
}

func (route *ViewRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/views/:view", route.getView)
}

// getView godoc
// @Summary Resolve a presentation view
// @Description `citizen` returns what the chat client can offer, `official` returns the dashboard.
// @Tags Views API
// @Produce json
// @Param view path string true "citizen or official"
// @Success 200 {object} viewresponses.ViewResponse "View payload"
// @Failure 400 {object} responses.ErrorResponse "Unknown view"
// @Router /v1/views/{view} [get]
func (route *ViewRoute) getView(reqCtx *gin.Context) {
	payload, err := route.handler.GetView(reqCtx.Request.Context(), reqCtx.Param("view"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to resolve view")
		return
	}
	reqCtx.JSON(http.StatusOK, viewresponses.NewViewResponse(payload))
}
