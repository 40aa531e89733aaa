package ncf

import (
	"context"
	"fmt"
	"sync"
)

// CounterStore persists the per-type NCF sequence counters. The persisted
// counter is authoritative: it is never derived by scanning invoices, so
// cancelled or discarded drafts can never cause a number to be reused.
type CounterStore interface {
	// Get returns the current counter value for a type (0 if never used).
	Get(ctx context.Context, t Type) (int64, error)

	// Increment atomically advances the counter by one and returns the new
	// value.
	Increment(ctx context.Context, t Type) (int64, error)

	// ResetAll sets every counter back to zero. Destructive and irreversible.
	ResetAll(ctx context.Context) error
}

// Sequencer issues fiscal document numbers. It serializes issuance per type
// so that two concurrent invoice creations can never be handed the same NCF.
type Sequencer struct {
	store CounterStore

	mu    sync.Mutex
	locks map[Type]*sync.Mutex
}

// NewSequencer creates a sequencer backed by the given counter store.
func NewSequencer(store CounterStore) *Sequencer {
	return &Sequencer{
		store: store,
		locks: make(map[Type]*sync.Mutex),
	}
}

func (s *Sequencer) typeLock(t Type) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[t]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[t] = lock
	}
	return lock
}

// PeekNext returns the NCF that the next Commit for this type would produce,
// without mutating any state. Repeated calls return the same value until a
// Commit happens. Used to pre-fill draft invoices.
func (s *Sequencer) PeekNext(ctx context.Context, t Type) (string, error) {
	if !IsValid(t) {
		return "", fmt.Errorf("unknown ncf type %q", t)
	}

	current, err := s.store.Get(ctx, t)
	if err != nil {
		return "", fmt.Errorf("read ncf counter: %w", err)
	}

	return Format(t, current+1), nil
}

// Commit advances the counter for a type and returns the NCF that was
// consumed. It must be called exactly once per durably saved invoice and
// only after the save succeeded.
func (s *Sequencer) Commit(ctx context.Context, t Type) (string, error) {
	if !IsValid(t) {
		return "", fmt.Errorf("unknown ncf type %q", t)
	}

	next, err := s.store.Increment(ctx, t)
	if err != nil {
		return "", fmt.Errorf("advance ncf counter: %w", err)
	}

	return Format(t, next), nil
}

// Issue reserves the next NCF for a type, invokes save with it, and commits
// the counter only when save succeeds. A failed save leaves the counter
// untouched, so the same number is offered to the next attempt; a committed
// save can never hand that number out again. The whole read-save-increment
// cycle holds the per-type lock, closing the race where two creations read
// the same counter value before either commits.
func (s *Sequencer) Issue(ctx context.Context, t Type, save func(ncf string) error) (string, error) {
	if !IsValid(t) {
		return "", fmt.Errorf("unknown ncf type %q", t)
	}

	lock := s.typeLock(t)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.store.Get(ctx, t)
	if err != nil {
		return "", fmt.Errorf("read ncf counter: %w", err)
	}

	assigned := Format(t, current+1)
	if err := save(assigned); err != nil {
		return "", err
	}

	if _, err := s.store.Increment(ctx, t); err != nil {
		// The invoice is durably saved but the counter did not advance. This
		// must surface loudly: the next issuance would repeat the NCF.
		return "", fmt.Errorf("ncf %s saved but counter advance failed: %w", assigned, err)
	}

	return assigned, nil
}

// Reset clears all counters back to zero. Administrative operation; the call
// boundary is responsible for demanding explicit confirmation.
func (s *Sequencer) Reset(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset ncf counters: %w", err)
	}
	return nil
}
