// Package verification tracks the outstanding challenge of every unverified
// member. All state is in-memory and lost on restart.
package verification

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/gatekeeper/internal/domain"
)

// ExpireFunc runs when a challenge times out unresolved. It is invoked at
// most once per challenge, on the timer goroutine, outside the store lock.
type ExpireFunc func(userID, chatID int64)

// Store owns all challenge records and their expiry timers. At most one live
// (record, timer) pair exists per user; removal of a record and cancellation
// of its timer happen inside one critical section, so resolution and expiry
// are mutually exclusive for the same challenge.
type Store struct {
	mu      sync.Mutex
	clock   Clock
	pending map[int64]*entry
}

type entry struct {
	challenge domain.Challenge
	timer     Timer
}

func NewStore() *Store {
	return NewStoreWithClock(realClock{})
}

func NewStoreWithClock(c Clock) *Store {
	return &Store{clock: c, pending: make(map[int64]*entry)}
}

// Register records a new challenge for userID and arms its expiry timer.
// A second registration while one is live returns ErrDuplicateChallenge and
// leaves the existing record and timer untouched.
func (s *Store) Register(userID, chatID int64, answer string, ttl time.Duration, onExpire ExpireFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[userID]; ok {
		return domain.ErrDuplicateChallenge
	}

	e := &entry{challenge: domain.Challenge{
		ID:        uuid.NewString(),
		UserID:    userID,
		ChatID:    chatID,
		Answer:    answer,
		ExpiresAt: s.clock.Now().Add(ttl),
	}}
	e.timer = s.clock.AfterFunc(ttl, func() {
		if s.expire(userID, e) {
			onExpire(userID, chatID)
		}
	})
	s.pending[userID] = e
	return nil
}

// expire pops the record when its timer fires. A false return means the
// challenge was resolved (or replaced) first and the callback must not run;
// the identity check keeps a stale timer from popping a successor record.
func (s *Store) expire(userID int64, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.pending[userID]
	if !ok || cur != e {
		return false
	}
	delete(s.pending, userID)
	return true
}

// Resolve pops the record and stops its timer before comparing the answer,
// guaranteeing that a resolution outcome and the expiry callback can never
// both be observed for one challenge.
func (s *Store) Resolve(userID int64, submitted string) (domain.Outcome, *domain.Challenge) {
	s.mu.Lock()
	e, ok := s.pending[userID]
	if !ok {
		s.mu.Unlock()
		return domain.OutcomeNotFound, nil
	}
	delete(s.pending, userID)
	e.timer.Stop()
	s.mu.Unlock()

	challenge := e.challenge
	if submitted == challenge.Answer {
		return domain.OutcomeCorrect, &challenge
	}
	return domain.OutcomeIncorrect, &challenge
}

// Cancel drops a challenge without an outcome, stopping its timer. Used when
// publishing the challenge failed and the member should be left unchallenged.
func (s *Store) Cancel(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[userID]
	if !ok {
		return false
	}
	delete(s.pending, userID)
	e.timer.Stop()
	return true
}

// Len reports how many challenges are outstanding.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
