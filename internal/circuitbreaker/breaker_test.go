package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errBoom = errors.New("boom")

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := New(Settings{MaxFailures: 3, ResetTimeout: time.Minute, Now: clock.Now})

	for i := 0; i < 3; i++ {
		if err := cb.Call(fail); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: err = %v, want errBoom", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("state = %v, want open", cb.State())
	}

	ran := false
	err := cb.Call(func() error { ran = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
	if ran {
		t.Error("function must not run while the circuit is open")
	}
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb := New(Settings{MaxFailures: 2})

	cb.Call(fail)
	cb.Call(succeed)
	cb.Call(fail)

	if cb.State() != StateClosed {
		t.Fatalf("state = %v, want closed", cb.State())
	}
	_, failures, _ := cb.Stats()
	if failures != 1 {
		t.Errorf("consecutive failures = %d, want 1", failures)
	}
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	tests := []struct {
		name      string
		probe     func() error
		wantState State
	}{
		{name: "successful probe closes", probe: succeed, wantState: StateClosed},
		{name: "failed probe reopens", probe: fail, wantState: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(0, 0)}
			cb := New(Settings{MaxFailures: 1, ResetTimeout: time.Minute, Now: clock.Now})

			cb.Call(fail)
			if cb.State() != StateOpen {
				t.Fatalf("state = %v, want open", cb.State())
			}

			clock.Advance(2 * time.Minute)
			cb.Call(tt.probe)

			if cb.State() != tt.wantState {
				t.Errorf("state = %v, want %v", cb.State(), tt.wantState)
			}
		})
	}
}

func TestCircuitBreaker_SingleProbeInHalfOpen(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	cb := New(Settings{MaxFailures: 1, ResetTimeout: time.Second, Now: clock.Now})
	cb.Call(fail)
	clock.Advance(2 * time.Second)

	inProbe := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- cb.Call(func() error {
			close(inProbe)
			<-release
			return nil
		})
	}()

	<-inProbe
	if err := cb.Call(succeed); !errors.Is(err, ErrTooManyRequests) {
		t.Errorf("concurrent call during probe: err = %v, want ErrTooManyRequests", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("probe err = %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var got []string
	cb := New(Settings{
		Name:         "chat",
		MaxFailures:  1,
		ResetTimeout: time.Second,
		Now:          clock.Now,
		OnStateChange: func(name string, from, to State) {
			got = append(got, name+":"+from.String()+"->"+to.String())
		},
	})

	cb.Call(fail)
	clock.Advance(2 * time.Second)
	cb.Call(succeed)

	want := []string{"chat:closed->open", "chat:open->half-open", "chat:half-open->closed"}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := New(Settings{MaxFailures: 1})
	cb.Call(fail)
	cb.Reset()

	if cb.State() != StateClosed {
		t.Fatalf("state = %v, want closed", cb.State())
	}
	if err := cb.Call(succeed); err != nil {
		t.Errorf("err = %v after reset", err)
	}
}
