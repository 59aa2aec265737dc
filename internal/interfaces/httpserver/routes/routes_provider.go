package routes

import (
	"github.com/google/wire"

	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	v1 "github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/admin"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/grievance"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/session"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes/v1/view"
)

var RouteProvider = wire.NewSet(
	handlers.NewSessionHandler,
	handlers.NewGrievanceHandler,
	handlers.NewViewHandler,
	handlers.NewProvider,
	NewV1Route,
)

// NewV1Route assembles the v1 route tree from the handler provider.
func NewV1Route(p *handlers.Provider) *v1.V1Route {
	return v1.NewV1Route(
		session.NewSessionRoute(p.Session),
		grievance.NewGrievanceRoute(p.Grievance),
		view.NewViewRoute(p.View),
		admin.NewAdminRoute(p.Grievance),
	)
}
