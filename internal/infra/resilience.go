package infra

import (
	"context"
	"sync"
	"time"
)

// Deduplicator coalesces identical in-flight requests. When several
// goroutines ask for the same key at once, one does the work and the rest
// wait for its result.
type Deduplicator struct {
	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done   chan struct{}
	result any
	err    error
}

// NewDeduplicator creates an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{inflight: make(map[string]*inflightCall)}
}

// Do runs fn unless a call with the same key is already in flight, in which
// case it waits for that call. The bool reports whether the result was
// shared from another caller.
func (d *Deduplicator) Do(ctx context.Context, key string, fn func() (any, error)) (any, bool, error) {
	d.mu.Lock()
	if call, ok := d.inflight[key]; ok {
		d.mu.Unlock()
		select {
		case <-call.done:
			return call.result, true, call.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	d.inflight[key] = call
	d.mu.Unlock()

	call.result, call.err = fn()
	close(call.done)

	d.mu.Lock()
	delete(d.inflight, key)
	d.mu.Unlock()

	return call.result, false, call.err
}

// Inflight returns the number of requests currently in flight.
func (d *Deduplicator) Inflight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}

// CircuitState is the current state of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // normal operation
	CircuitOpen                         // failing fast
	CircuitHalfOpen                     // probing for recovery
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker fails fast when an upstream API keeps erroring. After
// failureThreshold consecutive failures the circuit opens; after resetTimeout
// it lets a limited number of probe requests through.
type CircuitBreaker struct {
	mu sync.RWMutex

	failureThreshold int
	resetTimeout     time.Duration
	halfOpenMax      int

	state            CircuitState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenCount    int
}

// NewCircuitBreaker returns a breaker with defaults suited to the public
// APIs the tools call: open after 5 consecutive failures, probe after 30s.
func NewCircuitBreaker() *CircuitBreaker {
	return NewCircuitBreakerWithConfig(5, 30*time.Second, 2)
}

// NewCircuitBreakerWithConfig returns a breaker with explicit settings.
func NewCircuitBreakerWithConfig(failureThreshold int, resetTimeout time.Duration, halfOpenMax int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		halfOpenMax:      halfOpenMax,
		state:            CircuitClosed,
	}
}

// Allow reports whether a request may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenCount = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenCount < cb.halfOpenMax {
			cb.halfOpenCount++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets the failure count; a success in half-open closes the
// circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.halfOpenCount = 0
	}
}

// RecordFailure counts a failure; enough failures open the circuit, and any
// failure in half-open reopens it.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	cb.lastFailure = time.Now()

	switch cb.state {
	case CircuitClosed:
		if cb.consecutiveFails >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.halfOpenCount = 0
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Stats returns a snapshot of the breaker for logging and status tools.
func (cb *CircuitBreaker) Stats() CircuitBreakerStats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return CircuitBreakerStats{
		State:            cb.state.String(),
		ConsecutiveFails: cb.consecutiveFails,
		LastFailure:      cb.lastFailure,
	}
}

// CircuitBreakerStats is a point-in-time view of a CircuitBreaker.
type CircuitBreakerStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
}

// ErrCircuitOpen is returned when the circuit breaker rejects a request.
type ErrCircuitOpen struct {
	State    string
	RetryAt  time.Time
	Failures int
}

func (e *ErrCircuitOpen) Error() string {
	return "circuit breaker is open: upstream API is failing, retry after " + e.RetryAt.Format(time.RFC3339)
}
