package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the grievance desk.
type Config struct {
	// HTTP Server
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"sahayak-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8190"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	EnableSwagger   bool          `env:"ENABLE_SWAGGER" envDefault:"true"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Observability / Logging
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string  `env:"LOG_FORMAT" envDefault:"console"`
	EnableTracing     bool    `env:"ENABLE_TRACING" envDefault:"false"`
	EnableOTELMetrics bool    `env:"ENABLE_OTEL_METRICS" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPHeaders       string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	TraceSamplingRate float64 `env:"TRACE_SAMPLING_RATE" envDefault:"1.0"`
	PIILevel          string  `env:"PII_LEVEL" envDefault:"hashed"`

	// Classifier
	ClassifierAPIKey  string        `env:"CLASSIFIER_API_KEY"`
	ClassifierBaseURL string        `env:"CLASSIFIER_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	ClassifierModel   string        `env:"CLASSIFIER_MODEL" envDefault:"gemini-2.5-flash"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"30s"`
	HistoryWindow     int           `env:"HISTORY_WINDOW" envDefault:"4"`
	StubLatency       time.Duration `env:"STUB_LATENCY" envDefault:"1s"`

	// Ledger
	TicketPrefix string `env:"TICKET_PREFIX" envDefault:"JSS"`
	TicketStart  int    `env:"TICKET_START" envDefault:"5822"`
	SeedFile     string `env:"SEED_FILE"`

	// Sessions
	SessionCapacity    int           `env:"SESSION_CAPACITY" envDefault:"1024"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// Grievance events
	KafkaBrokers        []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaGrievanceTopic string   `env:"KAFKA_GRIEVANCE_TOPIC" envDefault:"grievance-events"`

	// Speech-to-text
	SpeechAPIKey   string `env:"SPEECH_API_KEY"`
	SpeechBaseURL  string `env:"SPEECH_BASE_URL" envDefault:"https://api.openai.com/v1"`
	SpeechModel    string `env:"SPEECH_MODEL" envDefault:"whisper-1"`
	SpeechLanguage string `env:"SPEECH_LANGUAGE" envDefault:"en"`
}

// Load parses environment variables into Config.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present, loaded by cmd/server)
// 3. Default values from struct tags
//
// A missing CLASSIFIER_API_KEY is not an error: the service falls back to the
// offline demo classifier.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TicketPrefix) == "" {
		return fmt.Errorf("TICKET_PREFIX must not be empty")
	}
	if strings.ContainsAny(c.TicketPrefix, "- ") {
		return fmt.Errorf("TICKET_PREFIX must not contain dashes or spaces")
	}
	if c.TicketStart < 0 {
		return fmt.Errorf("TICKET_START must be non-negative")
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("HISTORY_WINDOW must be non-negative")
	}
	if c.ClassifierTimeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("SESSION_CAPACITY must be positive")
	}
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("TRACE_SAMPLING_RATE must be between 0 and 1")
	}
	if (c.EnableTracing || c.EnableOTELMetrics) && strings.TrimSpace(c.OTLPEndpoint) == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing or OTEL metrics are enabled")
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// RemoteClassifierEnabled reports whether a classifier credential is configured.
func (c *Config) RemoteClassifierEnabled() bool {
	return strings.TrimSpace(c.ClassifierAPIKey) != ""
}

// SpeechEnabled reports whether the speech-to-text collaborator is configured.
func (c *Config) SpeechEnabled() bool {
	return strings.TrimSpace(c.SpeechAPIKey) != ""
}

// EventsEnabled reports whether grievance events should be published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
