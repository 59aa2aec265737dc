package conversation

import "time"

// Store keeps live sessions addressable by id. Removing a session from the
// store, by Delete, eviction or Sweep, closes it.
type Store interface {
	Create() (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string) error
	Sweep(idleFor time.Duration) int
	Len() int
}
