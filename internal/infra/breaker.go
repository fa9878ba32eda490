package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the position of a Breaker: closed, open or half-open.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // calls flow
	BreakerOpen                         // calls fail fast
	BreakerHalfOpen                     // one probe at a time
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned by Do while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// Breaker stops calling a failing dependency (the SMTP relay) for a cool-down
// period after maxFailures consecutive errors.
type Breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	openedAt    time.Time
	maxFailures int
	coolDown    time.Duration
	now         func() time.Time
}

func NewBreaker(maxFailures int, coolDown time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 3
	}
	if coolDown <= 0 {
		coolDown = 30 * time.Second
	}
	return &Breaker{maxFailures: maxFailures, coolDown: coolDown, now: time.Now}
}

// State reports the current state, moving open to half-open once the
// cool-down has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.coolDown {
		b.state = BreakerHalfOpen
	}
	return b.state
}

// Do runs fn unless the breaker is open. A failed half-open probe reopens it;
// a successful one closes it.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.stateLocked() == BreakerOpen {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.state = BreakerClosed
		b.failures = 0
		return nil
	}
	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.maxFailures {
		b.state = BreakerOpen
		b.openedAt = b.now()
		b.failures = 0
	}
	return err
}
