package kvstore

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultClearInterval is the interval between whole-store clears when
// Options.ClearInterval is zero.
const DefaultClearInterval = 5 * time.Minute

// NeverClear disables the whole-store clear cycle. Any negative interval
// behaves the same way.
const NeverClear = time.Duration(-1)

// Clock returns the current instant. Injected so tests can run the store
// against a simulated clock.
type Clock func() time.Time

// Entry stores a value and its absolute expiration instant. A zero ExpiresAt
// means the entry never expires on its own (it is still discarded by the
// whole-store clear).
type Entry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// expired reports whether the entry is past its expiration at instant now.
// The boundary is strict: an entry is still live at exactly ExpiresAt.
func (e Entry[V]) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Options configures a Store. The zero value is usable: a store that clears
// itself every DefaultClearInterval, keeps time with time.Now, schedules its
// timer on time.Timer and logs nowhere.
type Options[V any] struct {
	// ClearInterval is the duration between whole-store clears. Zero selects
	// DefaultClearInterval; NeverClear (or any negative value) disables the
	// cycle entirely.
	ClearInterval time.Duration

	// InitialStore, when non-nil, is used directly as the backing map. It is
	// meant for tests that want to seed entries or observe physical removal.
	InitialStore map[string]Entry[V]

	// Logger receives one info line at construction and debug lines on each
	// whole-store clear and on timer-cancellation failure. Defaults to a
	// no-op logger.
	Logger *zap.Logger

	// Clock supplies the current instant. Defaults to time.Now.
	Clock Clock

	// Delay schedules the cancellable clear timer. Defaults to a
	// time.Timer-backed implementation.
	Delay Delay
}

// Store maps string keys to values with independent per-entry expiry and a
// coarse whole-store reset cycle. It is safe for concurrent use: the clear
// cycle runs on its own goroutine and mutates the same map as callers.
type Store[V any] struct {
	clearInterval time.Duration
	clock         Clock
	delay         Delay
	log           *zap.Logger

	mu     sync.RWMutex
	items  map[string]Entry[V]
	handle Handle // outstanding clear timer, nil when the cycle is disabled

	done      chan struct{}
	closeOnce sync.Once
}

// New constructs a Store and, unless the clear cycle is disabled, arms its
// first clear timer.
func New[V any](opts Options[V]) *Store[V] {
	interval := opts.ClearInterval
	if interval == 0 {
		interval = DefaultClearInterval
	}
	items := opts.InitialStore
	if items == nil {
		items = make(map[string]Entry[V])
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	delay := opts.Delay
	if delay == nil {
		delay = timerDelay{}
	}

	s := &Store[V]{
		clearInterval: interval,
		clock:         clock,
		delay:         delay,
		log:           logger,
		items:         items,
		done:          make(chan struct{}),
	}
	s.log.Info("store initialized", zap.Duration("clear_interval", interval))

	if interval > 0 {
		s.mu.Lock()
		s.armClear()
		s.mu.Unlock()
		go s.clearLoop()
	}
	return s
}

// Set inserts or silently overwrites the entry for key with no per-entry
// expiry. The entry remains subject to the whole-store clear.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = Entry[V]{Value: value}
}

// SetWithTTL inserts or silently overwrites the entry for key with
// ExpiresAt = now + ttl. A zero ttl yields an entry that is still readable
// at the write instant and expired at any later one.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	expiresAt := s.clock().Add(ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = Entry[V]{Value: value, ExpiresAt: expiresAt}
}

// Get returns the live value for key. Absent and expired keys both miss; an
// expired entry is removed as part of the read.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if e.expired(s.clock()) {
		s.mu.Lock()
		// Re-check under the write lock: the entry may have been replaced
		// with a live one since the read.
		if cur, ok := s.items[key]; ok && cur.expired(s.clock()) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.Value, true
}

// Delete removes any entry for key. Deleting an absent key is a no-op.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Has reports whether key holds a live entry. Unlike Get it never mutates
// the store.
func (s *Store[V]) Has(key string) bool {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	return ok && !e.expired(s.clock())
}

// Len returns the number of live entries.
func (s *Store[V]) Len() int {
	now := s.clock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.items {
		if !e.expired(now) {
			count++
		}
	}
	return count
}

// Clear discards every entry regardless of its expiry. It does not touch
// the clear timer.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]Entry[V])
}

// PurgeExpired eagerly removes every expired entry.
func (s *Store[V]) PurgeExpired() {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.items {
		if e.expired(now) {
			delete(s.items, k)
		}
	}
}
