package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	notFound := errors.New("not found")

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return notFound }, func(error) bool { return false })
		if !errors.Is(err, notFound) {
			t.Fatalf("expected not found error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after non-failure errors, got %s", state)
	}

	_ = b.Execute(func() error { return errors.New("timeout") }, func(error) bool { return true })
	if err := b.Execute(func() error { return nil }, func(error) bool { return true }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open, got %v", err)
	}
}

func TestNewCircuitBreakerFromConfig_Disabled(t *testing.T) {
	if b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if b := NewCircuitBreakerFromConfig(DefaultCircuitBreakerConfig()); b == nil {
		t.Fatalf("expected breaker when enabled")
	}
}
