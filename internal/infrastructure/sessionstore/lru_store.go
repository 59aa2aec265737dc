package sessionstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/jalshakti/sahayak/internal/domain/conversation"
	"github.com/jalshakti/sahayak/internal/infrastructure/metrics"
)

const sessionIDPrefix = "sess_"

// LRUStore holds at most capacity sessions; the least recently used session is
// evicted, and closed, when a new one would exceed it.
type LRUStore struct {
	cache   *lru.Cache
	factory *conversation.Factory
	now     func() time.Time
	log     zerolog.Logger
}

var _ conversation.Store = (*LRUStore)(nil)

// NewLRUStore creates a bounded session registry.
func NewLRUStore(capacity int, factory *conversation.Factory, log zerolog.Logger) (*LRUStore, error) {
	store := &LRUStore{
		factory: factory,
		now:     time.Now,
		log:     log.With().Str("component", "session-store").Logger(),
	}
	cache, err := lru.NewWithEvict(capacity, store.onRemove)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	store.cache = cache
	return store, nil
}

func (s *LRUStore) onRemove(key, value interface{}) {
	if session, ok := value.(*conversation.Session); ok {
		session.Close()
	}
	s.log.Debug().Interface("session_id", key).Msg("session removed")
}

// Create opens a new session and registers it.
func (s *LRUStore) Create() (*conversation.Session, error) {
	id := sessionIDPrefix + uuid.NewString()
	session := s.factory.NewSession(id)
	if evicted := s.cache.Add(id, session); evicted {
		metrics.SessionsClosedTotal.WithLabelValues("evicted").Inc()
		s.log.Info().Int("capacity", s.cache.Len()).Msg("session capacity reached, evicted least recently used session")
	}
	metrics.ActiveSessions.Set(float64(s.cache.Len()))
	return session, nil
}

// Get returns a live session and marks it recently used.
func (s *LRUStore) Get(id string) (*conversation.Session, error) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", conversation.ErrSessionNotFound, id)
	}
	return value.(*conversation.Session), nil
}

// Delete closes and forgets a session.
func (s *LRUStore) Delete(id string) error {
	if !s.cache.Remove(id) {
		return fmt.Errorf("%w: %s", conversation.ErrSessionNotFound, id)
	}
	metrics.SessionsClosedTotal.WithLabelValues("deleted").Inc()
	metrics.ActiveSessions.Set(float64(s.cache.Len()))
	return nil
}

// Sweep closes sessions idle for longer than idleFor. Sessions waiting on a
// classifier reply are left alone.
func (s *LRUStore) Sweep(idleFor time.Duration) int {
	cutoff := s.now().Add(-idleFor)
	removed := 0
	for _, key := range s.cache.Keys() {
		value, ok := s.cache.Peek(key)
		if !ok {
			continue
		}
		if !value.(*conversation.Session).CloseIfIdle(cutoff) {
			continue
		}
		s.cache.Remove(key)
		removed++
	}
	if removed > 0 {
		metrics.SessionsClosedTotal.WithLabelValues("idle").Add(float64(removed))
	}
	metrics.ActiveSessions.Set(float64(s.cache.Len()))
	return removed
}

// Len returns the number of live sessions.
func (s *LRUStore) Len() int {
	return s.cache.Len()
}
