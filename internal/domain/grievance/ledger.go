package grievance

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNotFound      = errors.New("grievance not found")
	ErrDuplicateID   = errors.New("duplicate grievance id")
	ErrMalformedID   = errors.New("malformed grievance id")
	ErrInvalidStatus = errors.New("invalid grievance status")
)

// AppendListener is notified after a grievance has been added to the ledger.
type AppendListener func(Grievance)

// Ledger is the in-memory, most-recent-first collection of grievances.
// Ids are issued from a monotonic counter and checked against the index, so a
// seeded or externally chosen id is never handed out twice.
type Ledger struct {
	mu        sync.RWMutex
	format    TicketFormat
	records   []*Grievance
	index     map[string]*Grievance
	next      int
	now       func() time.Time
	listeners []AppendListener
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithClock overrides the time source used for submittedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) error {
		l.now = now
		return nil
	}
}

// WithTicketStart sets the lowest number the id counter may issue.
func WithTicketStart(start int) Option {
	return func(l *Ledger) error {
		if start > l.next {
			l.next = start
		}
		return nil
	}
}

// WithSeed loads existing grievances, given most-recent-first. The counter is
// moved past the highest seeded number.
func WithSeed(seed []Grievance) Option {
	return func(l *Ledger) error {
		for _, g := range seed {
			n, ok := l.format.Number(g.ID)
			if !ok {
				return fmt.Errorf("%w: %q", ErrMalformedID, g.ID)
			}
			key := normalizeID(g.ID)
			if _, exists := l.index[key]; exists {
				return fmt.Errorf("%w: %q", ErrDuplicateID, g.ID)
			}
			if !g.Category.Valid() {
				return fmt.Errorf("%w: unknown category %q for %s", ErrInvalidDraft, g.Category, g.ID)
			}
			if !g.Status.Valid() {
				return fmt.Errorf("%w: %q for %s", ErrInvalidStatus, g.Status, g.ID)
			}
			record := g
			l.records = append(l.records, &record)
			l.index[key] = &record
			if n+1 > l.next {
				l.next = n + 1
			}
		}
		return nil
	}
}

// WithAppendListener registers fn to run after every successful Append.
func WithAppendListener(fn AppendListener) Option {
	return func(l *Ledger) error {
		if fn != nil {
			l.listeners = append(l.listeners, fn)
		}
		return nil
	}
}

// NewLedger builds an empty ledger issuing ids in format.
func NewLedger(format TicketFormat, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		format: format,
		index:  make(map[string]*Grievance),
		next:   1,
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Format returns the ticket id format the ledger issues.
func (l *Ledger) Format() TicketFormat {
	return l.format
}

// Append files a new grievance from draft and returns the stored record.
func (l *Ledger) Append(draft Draft) (Grievance, error) {
	if err := draft.Validate(); err != nil {
		return Grievance{}, err
	}

	l.mu.Lock()
	id := l.nextIDLocked()
	record := &Grievance{
		ID:          id,
		Category:    draft.Category,
		Summary:     draft.Summary,
		Location:    draft.Location,
		Status:      StatusOpen,
		SubmittedAt: l.now(),
	}
	l.records = append([]*Grievance{record}, l.records...)
	l.index[normalizeID(id)] = record
	snapshot := *record
	listeners := l.listeners
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return snapshot, nil
}

func (l *Ledger) nextIDLocked() string {
	for {
		candidate := l.format.Format(l.next)
		l.next++
		if _, taken := l.index[normalizeID(candidate)]; !taken {
			return candidate
		}
	}
}

// FindByID looks a grievance up by id, ignoring case.
func (l *Ledger) FindByID(id string) (Grievance, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.index[normalizeID(id)]
	if !ok {
		return Grievance{}, false
	}
	return *record, true
}

// All returns a copy of every grievance, most recent first.
func (l *Ledger) All() []Grievance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Grievance, len(l.records))
	for i, record := range l.records {
		out[i] = *record
	}
	return out
}

// Len returns the number of grievances in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// SetStatus moves a grievance to status. Only the administrative surface calls this.
func (l *Ledger) SetStatus(id string, status Status) (Grievance, error) {
	if !status.Valid() {
		return Grievance{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.index[normalizeID(id)]
	if !ok {
		return Grievance{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	record.Status = status
	return *record, nil
}
