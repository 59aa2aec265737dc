package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jalshakti/sahayak/internal/config"
	"github.com/jalshakti/sahayak/internal/infrastructure"
	"github.com/jalshakti/sahayak/internal/infrastructure/crontab"
	"github.com/jalshakti/sahayak/internal/infrastructure/events"
	"github.com/jalshakti/sahayak/internal/infrastructure/inference"
	"github.com/jalshakti/sahayak/internal/infrastructure/observability"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/handlers"
	"github.com/jalshakti/sahayak/internal/interfaces/httpserver/routes"
)

// @title Jal Shakti Sahayak API
// @version 1.0
// @description Conversational intake and status lookup for water-service grievances.
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	publisher  events.Publisher
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, janitor *crontab.Crontab, publisher events.Publisher, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    janitor,
		publisher:  publisher,
		log:        log,
	}
}

// Start runs the HTTP server and the janitor until ctx is cancelled or either fails.
func (a *Application) Start(ctx context.Context) error {
	defer func() {
		if err := a.publisher.Close(); err != nil {
			a.log.Error().Err(err).Msg("close grievance event publisher")
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	g.Go(func() error {
		return a.crontab.Run(ctx)
	})
	return g.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := infrastructure.ProvideConfig()
	if err != nil {
		panic(err)
	}

	log, err := infrastructure.ProvideLogger(cfg)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	app, err := buildApplication(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble application")
	}

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func buildApplication(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	format := infrastructure.ProvideTicketFormat(cfg)
	publisher := infrastructure.ProvideEventPublisher(cfg, log)

	ledger, err := infrastructure.ProvideLedger(cfg, format, publisher, log)
	if err != nil {
		return nil, err
	}
	classifier, err := infrastructure.ProvideClassifier(cfg, format, log)
	if err != nil {
		return nil, err
	}
	factory := infrastructure.ProvideSessionFactory(cfg, classifier, ledger, infrastructure.ProvideSanitizer(cfg), log)
	store, err := infrastructure.ProvideSessionStore(cfg, factory, log)
	if err != nil {
		return nil, err
	}
	transcriber := infrastructure.ProvideTranscriber(cfg, log)

	grievanceHandler := handlers.NewGrievanceHandler(ledger)
	handlerProvider := handlers.NewProvider(
		handlers.NewSessionHandler(store, transcriber),
		grievanceHandler,
		handlers.NewViewHandler(grievanceHandler, newCapabilities(cfg, classifier)),
	)

	jobs, err := infrastructure.ProvideJobInstrumenter()
	if err != nil {
		return nil, err
	}

	httpServer := httpserver.New(cfg, log, routes.NewV1Route(handlerProvider), newReadinessProbes(publisher)...)
	return NewApplication(httpServer, infrastructure.ProvideCrontab(cfg, store, jobs, log), publisher, log), nil
}

func newCapabilities(cfg *config.Config, classifier *inference.InstrumentedClassifier) handlers.Capabilities {
	return handlers.Capabilities{
		ClassifierMode: classifier.Mode(),
		SpeechEnabled:  cfg.SpeechEnabled(),
		TicketPrefix:   cfg.TicketPrefix,
	}
}

func newReadinessProbes(publisher events.Publisher) []httpserver.ReadinessProbe {
	var probes []httpserver.ReadinessProbe
	if kafka, ok := publisher.(*events.KafkaPublisher); ok {
		probes = append(probes, kafka.Ping)
	}
	return probes
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
