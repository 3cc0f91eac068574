package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit bounds in-flight probes and is the number of probe
	// successes needed to close the circuit again.
	HalfOpenLimit int
}

// CircuitBreaker guards one upstream API.
//
//	closed    -> open       after MaxFailures consecutive failures
//	open      -> half-open  once Timeout has elapsed since the last failure
//	half-open -> closed     after HalfOpenLimit successes
//	half-open -> open       on any failure
type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         CircuitBreakerConfig
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker returns a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after every transition. fn runs
// without the breaker's lock held.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.onStateChange = fn
	cb.mu.Unlock()
}

// Allow reports whether a call may proceed. A true result in half-open
// state reserves a probe slot that RecordSuccess, RecordFailure or Release
// gives back.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		allowed bool
		from    = cb.state
	)

	switch cb.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			cb.setState(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}
	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	cb.unlockAndNotify(from)

	return allowed
}

// RecordSuccess reports a successful call.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	from := cb.state

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.release()
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}

	cb.unlockAndNotify(from)
}

// RecordFailure reports a failed call.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	from := cb.state
	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.release()
		cb.setState(StateOpen)
	}

	cb.unlockAndNotify(from)
}

// Release gives back the slot of a call that ended without telling anything
// about the upstream, such as one its caller cancelled. Counters and state
// are left alone.
func (cb *CircuitBreaker) Release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.release()
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

func (cb *CircuitBreaker) release() {
	if cb.inFlight > 0 {
		cb.inFlight--
	}
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) {
	if cb.state == to {
		return
	}

	cb.state = to
	cb.failures = 0
	cb.successes = 0

	if to != StateHalfOpen {
		cb.inFlight = 0
	}
}

func (cb *CircuitBreaker) unlockAndNotify(from State) {
	to := cb.state
	fn := cb.onStateChange
	cb.mu.Unlock()

	if fn != nil && from != to {
		fn(from, to)
	}
}
