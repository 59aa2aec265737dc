package inference

import (
	"github.com/rs/zerolog"

	"github.com/jalshakti/sahayak/internal/config"
	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure/observability"
	"github.com/jalshakti/sahayak/internal/utils/httpclients"
)

// NewClassifier picks the remote classifier when an API key is configured and
// the demo stub otherwise. The result is always instrumented.
func NewClassifier(cfg *config.Config, format grievance.TicketFormat, log zerolog.Logger) (*InstrumentedClassifier, error) {
	if !cfg.RemoteClassifierEnabled() {
		log.Warn().
			Str("error_type", "ConfigurationMissing").
			Dur("stub_latency", cfg.StubLatency).
			Msg("CLASSIFIER_API_KEY is not set, falling back to the demo stub classifier")
		stub := NewStubClassifier(format, cfg.StubLatency)
		return Instrument(stub, classification.ModeStub, format, observability.Tracer()), nil
	}

	client := httpclients.NewClient("classifier", cfg.ClassifierTimeout, log)
	remote, err := NewRemoteClassifier(client, RemoteOptions{
		BaseURL: cfg.ClassifierBaseURL,
		APIKey:  cfg.ClassifierAPIKey,
		Model:   cfg.ClassifierModel,
		Format:  format,
	}, log)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("base_url", cfg.ClassifierBaseURL).
		Str("model", cfg.ClassifierModel).
		Dur("timeout", cfg.ClassifierTimeout).
		Msg("remote classifier configured")
	return Instrument(remote, classification.ModeRemote, format, observability.Tracer()), nil
}
