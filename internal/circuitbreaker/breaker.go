package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures a CircuitBreaker
type Settings struct {
	Name string

	// MaxFailures is the number of consecutive failures that opens the circuit
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before a probe is let through
	ResetTimeout time.Duration

	// OnStateChange, if set, is called after every transition. It runs with
	// the breaker lock released.
	OnStateChange func(name string, from, to State)

	// Now overrides the clock; used by tests
	Now func() time.Time
}

// CircuitBreaker guards a remote dependency. After MaxFailures consecutive
// failures it rejects calls for ResetTimeout, then admits one probe.
type CircuitBreaker struct {
	settings Settings

	mu          sync.Mutex
	state       State
	failures    int
	probing     bool
	openedAt    time.Time
	transitions int
}

// New creates a circuit breaker from settings, filling zero values
func New(s Settings) *CircuitBreaker {
	if s.MaxFailures <= 0 {
		s.MaxFailures = 5
	}
	if s.ResetTimeout <= 0 {
		s.ResetTimeout = time.Minute
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return &CircuitBreaker{settings: s, state: StateClosed}
}

// Call executes fn with circuit breaker protection. When the circuit
// rejects the call fn is not run and ErrCircuitOpen or ErrTooManyRequests
// is returned.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := fn()
	cb.afterCall(err)

	return err
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	var changed func()
	defer func() {
		cb.mu.Unlock()
		if changed != nil {
			changed()
		}
	}()

	switch cb.state {
	case StateOpen:
		if cb.settings.Now().Sub(cb.openedAt) < cb.settings.ResetTimeout {
			return ErrCircuitOpen
		}
		changed = cb.setState(StateHalfOpen)
		cb.probing = true
		return nil

	case StateHalfOpen:
		if cb.probing {
			return ErrTooManyRequests
		}
		cb.probing = true
		return nil
	}

	return nil
}

func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	var changed func()
	defer func() {
		cb.mu.Unlock()
		if changed != nil {
			changed()
		}
	}()

	cb.probing = false

	if err == nil {
		cb.failures = 0
		if cb.state == StateHalfOpen {
			changed = cb.setState(StateClosed)
		}
		return
	}

	cb.failures++
	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.settings.MaxFailures {
			cb.openedAt = cb.settings.Now()
			changed = cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.openedAt = cb.settings.Now()
		changed = cb.setState(StateOpen)
	}
}

// setState must be called with mu held. It returns the notification to run
// once the lock is released.
func (cb *CircuitBreaker) setState(to State) func() {
	from := cb.state
	if from == to {
		return nil
	}
	cb.state = to
	cb.transitions++

	hook := cb.settings.OnStateChange
	if hook == nil {
		return nil
	}
	name := cb.settings.Name
	return func() { hook(name, from, to) }
}

// State returns current circuit breaker state. An open circuit whose reset
// timeout has elapsed still reports open until the next call probes it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() (state State, consecutiveFailures, transitions int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state, cb.failures, cb.transitions
}

// Reset resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	changed := cb.setState(StateClosed)
	cb.failures = 0
	cb.probing = false
	cb.mu.Unlock()

	if changed != nil {
		changed()
	}
}
