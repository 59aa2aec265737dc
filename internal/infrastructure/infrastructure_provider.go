package infrastructure

import (
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/jalshakti/sahayak/internal/config"
	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure/crontab"
	"github.com/jalshakti/sahayak/internal/infrastructure/events"
	"github.com/jalshakti/sahayak/internal/infrastructure/inference"
	"github.com/jalshakti/sahayak/internal/infrastructure/logger"
	"github.com/jalshakti/sahayak/internal/infrastructure/observability"
	"github.com/jalshakti/sahayak/internal/infrastructure/seed"
	"github.com/jalshakti/sahayak/internal/infrastructure/sessionstore"
	"github.com/jalshakti/sahayak/internal/infrastructure/speech"
	"github.com/jalshakti/sahayak/pkg/telemetry"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("service", cfg.ServiceName).Logger(), nil
}

// ProvideSanitizer provides the PII scrubber applied to citizen text in logs.
func ProvideSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	return telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.PIILevel), cfg.ServiceName)
}

// ProvideTicketFormat provides the ticket id format shared by the ledger and classifiers.
func ProvideTicketFormat(cfg *config.Config) grievance.TicketFormat {
	return grievance.NewTicketFormat(cfg.TicketPrefix)
}

// ProvideEventPublisher returns a Kafka publisher when brokers are configured.
func ProvideEventPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if !cfg.EventsEnabled() {
		log.Info().Msg("KAFKA_BROKERS is not set, grievance events are disabled")
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaGrievanceTopic, log)
}

// ProvideLedger seeds the grievance ledger and hooks the event publisher to appends.
func ProvideLedger(cfg *config.Config, format grievance.TicketFormat, publisher events.Publisher, log zerolog.Logger) (*grievance.Ledger, error) {
	records, err := seed.Load(cfg.SeedFile, time.Now())
	if err != nil {
		return nil, err
	}

	ledger, err := grievance.NewLedger(format,
		grievance.WithTicketStart(cfg.TicketStart),
		grievance.WithSeed(records),
		grievance.WithAppendListener(events.AppendListener(publisher, log)),
	)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("seeded", ledger.Len()).
		Str("ticket_prefix", format.Prefix()).
		Str("seed_file", cfg.SeedFile).
		Msg("grievance ledger ready")
	return ledger, nil
}

// ProvideClassifier provides the instrumented intent classifier.
func ProvideClassifier(cfg *config.Config, format grievance.TicketFormat, log zerolog.Logger) (*inference.InstrumentedClassifier, error) {
	return inference.NewClassifier(cfg, format, log)
}

// ProvideSessionFactory wires the collaborators every conversation shares.
func ProvideSessionFactory(
	cfg *config.Config,
	classifier classification.Classifier,
	ledger conversation.Ledger,
	sanitizer *telemetry.Sanitizer,
	log zerolog.Logger,
) *conversation.Factory {
	return conversation.NewFactory(classifier, ledger, conversation.Settings{
		HistoryWindow: cfg.HistoryWindow,
		TurnTimeout:   cfg.ClassifierTimeout,
	}, log, sanitizer)
}

// ProvideSessionStore provides the bounded session registry.
func ProvideSessionStore(cfg *config.Config, factory *conversation.Factory, log zerolog.Logger) (*sessionstore.LRUStore, error) {
	return sessionstore.NewLRUStore(cfg.SessionCapacity, factory, log)
}

// ProvideTranscriber returns the Whisper transcriber, or a disabled one without SPEECH_API_KEY.
func ProvideTranscriber(cfg *config.Config, log zerolog.Logger) speech.Transcriber {
	if !cfg.SpeechEnabled() {
		log.Info().Msg("SPEECH_API_KEY is not set, speech input is disabled")
		return speech.Disabled{}
	}
	return speech.NewWhisperTranscriber(cfg.SpeechAPIKey, cfg.SpeechBaseURL, cfg.SpeechModel, cfg.SpeechLanguage)
}

// ProvideJobInstrumenter provides span and metric recording for background jobs.
func ProvideJobInstrumenter() (*observability.JobInstrumenter, error) {
	return observability.NewGlobalJobInstrumenter()
}

// ProvideCrontab provides the idle-session janitor.
func ProvideCrontab(cfg *config.Config, store conversation.Store, jobs *observability.JobInstrumenter, log zerolog.Logger) *crontab.Crontab {
	return crontab.NewCrontab(store, cfg.SessionIdleTimeout, jobs, log)
}

var InfrastructureProvider = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideSanitizer,
	ProvideTicketFormat,
	ProvideEventPublisher,
	ProvideLedger,
	ProvideClassifier,
	ProvideSessionFactory,
	ProvideSessionStore,
	ProvideTranscriber,
	ProvideJobInstrumenter,
	ProvideCrontab,
	wire.Bind(new(conversation.Ledger), new(*grievance.Ledger)),
	wire.Bind(new(classification.Classifier), new(*inference.InstrumentedClassifier)),
	wire.Bind(new(conversation.Store), new(*sessionstore.LRUStore)),
)
