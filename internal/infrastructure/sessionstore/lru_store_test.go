package sessionstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalshakti/sahayak/internal/domain/classification"
	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/domain/grievance"
	"github.com/jalshakti/sahayak/pkg/telemetry"
)

var start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newFactory(t *testing.T, classifier classification.Classifier) *conversation.Factory {
	t.Helper()
	ledger, err := grievance.NewLedger(grievance.NewTicketFormat("JSS"))
	require.NoError(t, err)
	if classifier == nil {
		classifier = classification.ClassifierFunc(func(context.Context, string, []classification.HistoryEntry) (classification.Decision, error) {
			return classification.Decision{Intent: classification.IntentGeneralQuery, ReplyText: "ok"}, nil
		})
	}
	return conversation.NewFactory(classifier, ledger, conversation.Settings{HistoryWindow: 4, TurnTimeout: time.Second},
		zerolog.Nop(), telemetry.NewSanitizer(telemetry.PIILevelHashed, "test")).
		WithClock(func() time.Time { return start })
}

func TestLRUStoreCreateGetDelete(t *testing.T) {
	store, err := NewLRUStore(4, newFactory(t, nil), zerolog.Nop())
	require.NoError(t, err)

	session, err := store.Create()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.ID(), sessionIDPrefix))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)

	require.NoError(t, store.Delete(session.ID()))
	assert.True(t, session.Closed())
	assert.Zero(t, store.Len())

	_, err = store.Get(session.ID())
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(session.ID()), conversation.ErrSessionNotFound)
}

func TestLRUStoreEvictionClosesLeastRecentlyUsed(t *testing.T) {
	store, err := NewLRUStore(2, newFactory(t, nil), zerolog.Nop())
	require.NoError(t, err)

	first, _ := store.Create()
	second, _ := store.Create()
	_, err = store.Get(first.ID())
	require.NoError(t, err)

	third, _ := store.Create()

	assert.Equal(t, 2, store.Len())
	assert.True(t, second.Closed(), "least recently used session is evicted")
	assert.False(t, first.Closed())
	assert.False(t, third.Closed())

	_, err = store.Get(second.ID())
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}

func TestLRUStoreSweepRemovesIdleSessions(t *testing.T) {
	store, err := NewLRUStore(8, newFactory(t, nil), zerolog.Nop())
	require.NoError(t, err)

	idle, _ := store.Create()
	other, _ := store.Create()

	store.now = func() time.Time { return start.Add(10 * time.Minute) }
	assert.Zero(t, store.Sweep(30*time.Minute))

	store.now = func() time.Time { return start.Add(31 * time.Minute) }
	assert.Equal(t, 2, store.Sweep(30*time.Minute))
	assert.True(t, idle.Closed())
	assert.True(t, other.Closed())
	assert.Zero(t, store.Len())
}

func TestLRUStoreSweepSkipsPendingSessions(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	factory := newFactory(t, classification.ClassifierFunc(
		func(context.Context, string, []classification.HistoryEntry) (classification.Decision, error) {
			close(started)
			<-release
			return classification.Decision{Intent: classification.IntentGeneralQuery, ReplyText: "ok"}, nil
		}))
	store, err := NewLRUStore(8, factory, zerolog.Nop())
	require.NoError(t, err)

	session, _ := store.Create()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = session.Send(context.Background(), "hello")
	}()
	<-started

	store.now = func() time.Time { return start.Add(time.Hour) }
	assert.Zero(t, store.Sweep(30*time.Minute))
	assert.False(t, session.Closed())

	close(release)
	<-done
}

func TestLRUStoreSweptSessionRejectsLaterTurn(t *testing.T) {
	calls := 0
	factory := newFactory(t, classification.ClassifierFunc(
		func(context.Context, string, []classification.HistoryEntry) (classification.Decision, error) {
			calls++
			return classification.Decision{Intent: classification.IntentGeneralQuery, ReplyText: "ok"}, nil
		}))
	store, err := NewLRUStore(8, factory, zerolog.Nop())
	require.NoError(t, err)

	session, _ := store.Create()
	store.now = func() time.Time { return start.Add(time.Hour) }
	require.Equal(t, 1, store.Sweep(30*time.Minute))

	_, err = session.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, conversation.ErrSessionClosed)
	assert.Zero(t, calls)

	_, err = store.Get(session.ID())
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}
