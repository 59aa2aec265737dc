package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/admin"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/grievance"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/session"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/view"
)

type V1Route struct {
	session   *session.SessionRoute
	grievance *grievance.GrievanceRoute
	view      *view.ViewRoute
	admin     *admin.AdminRoute
}

func NewV1Route(
	session *session.SessionRoute,
	grievance *grievance.GrievanceRoute,
	view *view.ViewRoute,
	admin *admin.AdminRoute,
) *V1Route {
	return &V1Route{
		session,
		grievance,
		view,
		admin,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1 := router.Group("/v1")
	v1Route.session.RegisterRouter(v1)
	v1Route.grievance.RegisterRouter(v1)
	v1Route.view.RegisterRouter(v1)
	v1Route.admin.RegisterRouter(v1)
}
