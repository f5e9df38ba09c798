// Package otp implements mobile verification: a process-memory code store
// with per-number expiry and an SMS gateway for delivery. Codes are never
// persisted to the database.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

var (
	ErrNotFound    = errors.New("otp expired or not found")
	ErrInvalidCode = errors.New("invalid otp code")
)

type entry struct {
	code      string
	expiresAt time.Time
	timer     *time.Timer
}

// Store holds pending codes keyed by mobile number. Issuing a new code for a
// number stops and replaces the previous expiry timer, so an older send can
// never delete a newer code early.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
}

// NewStore creates a store with the given code lifetime.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Issue generates a fresh 4-digit code for the mobile number, replacing any
// pending one.
func (s *Store) Issue(mobile string) string {
	code := generateCode()

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[mobile]; ok && old.timer != nil {
		old.timer.Stop()
	}

	e := &entry{
		code:      code,
		expiresAt: time.Now().Add(s.ttl),
	}
	e.timer = time.AfterFunc(s.ttl, func() {
		s.expire(mobile, e)
	})
	s.entries[mobile] = e

	return code
}

// Verify consumes the pending code for the mobile number. A correct code
// within its window succeeds exactly once; afterwards the entry is gone and
// a replay fails with ErrNotFound.
func (s *Store) Verify(mobile, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[mobile]
	if !ok || time.Now().After(e.expiresAt) {
		return ErrNotFound
	}
	if e.code != code {
		return ErrInvalidCode
	}

	if e.timer != nil {
		e.timer.Stop()
	}
	delete(s.entries, mobile)
	return nil
}

// Sweep removes entries whose expiry already passed and returns how many
// were dropped. The per-entry timers normally handle this; the sweep is a
// backstop run from cron.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for mobile, e := range s.entries {
		if now.After(e.expiresAt) {
			if e.timer != nil {
				e.timer.Stop()
			}
			delete(s.entries, mobile)
			removed++
		}
	}
	return removed
}

// Pending returns the number of outstanding codes.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// expire removes the entry only if it is still the same one the timer was
// armed for; a newer code for the same number stays untouched.
func (s *Store) expire(mobile string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.entries[mobile]; ok && current == e {
		delete(s.entries, mobile)
	}
}

func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failure leaves nothing sensible to fall back on
		panic(err)
	}
	return fmt.Sprintf("%04d", n.Int64())
}
