package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/internal/infrastructure/metrics"
)

const (
	EventTypeGrievanceFiled = "grievance.filed"

	publishTimeout = 5 * time.Second
)

// GrievanceEvent is the payload handed to the administrative collaborator.
type GrievanceEvent struct {
	EventType string              `json:"event_type"`
	Grievance grievance.Grievance `json:"grievance"`
	Timestamp time.Time           `json:"timestamp"`
}

// Publisher announces ledger changes to downstream consumers.
type Publisher interface {
	PublishFiled(ctx context.Context, g grievance.Grievance) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes grievance events to a Kafka topic keyed by ticket id.
type KafkaPublisher struct {
	writer  messageWriter
	brokers []string
	dial    func(ctx context.Context, network, address string) (io.Closer, error)
	now     func() time.Time
	log     zerolog.Logger
}

// NewKafkaPublisher creates an async writer; delivery failures are logged from
// the completion callback.
func NewKafkaPublisher(brokers []string, topic string, log zerolog.Logger) *KafkaPublisher {
	log = log.With().Str("component", "grievance-events").Str("topic", topic).Logger()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				metrics.GrievanceEventsTotal.WithLabelValues("failed").Add(float64(len(messages)))
				log.Error().Err(err).Int("messages", len(messages)).Msg("failed to deliver grievance events")
				return
			}
			metrics.GrievanceEventsTotal.WithLabelValues("delivered").Add(float64(len(messages)))
		},
	}
	p := newKafkaPublisher(writer, log)
	p.brokers = brokers
	return p
}

func newKafkaPublisher(writer messageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, dial: dialKafka, now: time.Now, log: log}
}

func dialKafka(ctx context.Context, network, address string) (io.Closer, error) {
	return kafka.DialContext(ctx, network, address)
}

// Ping succeeds when at least one broker accepts a connection.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	var errs []error
	for _, broker := range p.brokers {
		conn, err := p.dial(ctx, "tcp", broker)
		if err == nil {
			return conn.Close()
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PublishFiled emits a grievance.filed event.
func (p *KafkaPublisher) PublishFiled(ctx context.Context, g grievance.Grievance) error {
	data, err := json.Marshal(GrievanceEvent{
		EventType: EventTypeGrievanceFiled,
		Grievance: g,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(g.ID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeGrievanceFiled)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.log.Debug().Str("ticket_id", g.ID).Msg("queued grievance event")
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishFiled(context.Context, grievance.Grievance) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }

// AppendListener adapts a Publisher to the ledger hook. Publishing never fails
// the append; errors are logged and counted.
func AppendListener(p Publisher, log zerolog.Logger) grievance.AppendListener {
	return func(g grievance.Grievance) {
		metrics.GrievancesFiledTotal.WithLabelValues(string(g.Category)).Inc()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.PublishFiled(ctx, g); err != nil {
			metrics.GrievanceEventsTotal.WithLabelValues("failed").Inc()
			log.Error().Err(err).Str("ticket_id", g.ID).Msg("failed to publish grievance event")
		}
	}
}
