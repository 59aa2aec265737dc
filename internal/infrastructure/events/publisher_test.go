package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var filed = grievance.Grievance{
	ID:          "JSS-5822",
	Category:    grievance.CategoryPipelineLeakage,
	Summary:     "Water pipe leaking on the main road for 2 days.",
	Location:    "Kharadi, Pune",
	Status:      grievance.StatusOpen,
	SubmittedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
}

func TestKafkaPublisherPublishFiled(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newKafkaPublisher(writer, zerolog.Nop())
	publisher.now = func() time.Time { return filed.SubmittedAt }

	require.NoError(t, publisher.PublishFiled(context.Background(), filed))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "JSS-5822", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventTypeGrievanceFiled, string(msg.Headers[0].Value))

	var event GrievanceEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, EventTypeGrievanceFiled, event.EventType)
	assert.Equal(t, filed.ID, event.Grievance.ID)
	assert.Equal(t, filed.Location, event.Grievance.Location)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestAppendListenerSwallowsPublishErrors(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	listener := AppendListener(newKafkaPublisher(writer, zerolog.Nop()), zerolog.Nop())

	assert.NotPanics(t, func() { listener(filed) })
	assert.Empty(t, writer.messages)
}

func TestLedgerPublishesThroughListener(t *testing.T) {
	writer := &fakeWriter{}
	ledger, err := grievance.NewLedger(grievance.NewTicketFormat("JSS"),
		grievance.WithAppendListener(AppendListener(newKafkaPublisher(writer, zerolog.Nop()), zerolog.Nop())),
	)
	require.NoError(t, err)

	g, err := ledger.Append(grievance.Draft{
		Category: grievance.CategoryBillingIssue,
		Location: "Koramangala, Bangalore",
		Summary:  "Double charged this month",
	})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, g.ID, string(writer.messages[0].Key))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishFiled(context.Background(), filed))
	assert.NoError(t, p.Close())
}

type nopCloser struct{ closed *bool }

func (c nopCloser) Close() error {
	*c.closed = true
	return nil
}

func TestKafkaPublisherPing(t *testing.T) {
	publisher := newKafkaPublisher(&fakeWriter{}, zerolog.Nop())
	assert.Error(t, publisher.Ping(context.Background()))

	var dialed []string
	closed := false
	publisher.brokers = []string{"kafka-1:9092", "kafka-2:9092"}
	publisher.dial = func(_ context.Context, _, address string) (io.Closer, error) {
		dialed = append(dialed, address)
		if address == "kafka-1:9092" {
			return nil, errors.New("connection refused")
		}
		return nopCloser{closed: &closed}, nil
	}

	require.NoError(t, publisher.Ping(context.Background()))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, dialed)
	assert.True(t, closed)

	publisher.dial = func(context.Context, string, string) (io.Closer, error) {
		return nil, errors.New("connection refused")
	}
	assert.Error(t, publisher.Ping(context.Background()))
}
