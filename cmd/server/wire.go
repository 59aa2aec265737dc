//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes"
)

// BuildApplication assembles the service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		wire.Bind(new(handlers.GrievanceLedger), new(*grievance.Ledger)),
		newCapabilities,
		newReadinessProbes,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
