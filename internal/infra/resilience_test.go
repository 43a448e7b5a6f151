package infra

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDeduplicator_SingleCall(t *testing.T) {
	d := NewDeduplicator()

	result, shared, err := d.Do(context.Background(), "key", func() (any, error) {
		return "value", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shared {
		t.Error("single call should not be shared")
	}
	if result != "value" {
		t.Errorf("expected 'value', got %v", result)
	}
	if d.Inflight() != 0 {
		t.Errorf("expected 0 in flight after completion, got %d", d.Inflight())
	}
}

func TestDeduplicator_CoalescesConcurrentCalls(t *testing.T) {
	d := NewDeduplicator()

	var calls atomic.Int32
	release := make(chan struct{})

	fn := func() (any, error) {
		calls.Add(1)
		<-release
		return "shared-result", nil
	}

	const workers = 5
	var wg sync.WaitGroup
	var sharedCount atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, shared, err := d.Do(context.Background(), "same-key", fn)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if result != "shared-result" {
				t.Errorf("unexpected result: %v", result)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	// Let the waiters pile up before releasing the one real call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected fn to run once, ran %d times", calls.Load())
	}
	if sharedCount.Load() != workers-1 {
		t.Errorf("expected %d shared results, got %d", workers-1, sharedCount.Load())
	}
}

func TestDeduplicator_ContextCancel(t *testing.T) {
	d := NewDeduplicator()

	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _, _ = d.Do(context.Background(), "key", func() (any, error) {
			<-release
			return nil, nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Do(ctx, "key", func() (any, error) { return nil, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if !cb.Allow() {
			t.Fatalf("request %d should be allowed while closed", i)
		}
		cb.RecordFailure()
	}

	if cb.State() != CircuitOpen {
		t.Errorf("expected open after 3 failures, got %s", cb.State())
	}
	if cb.Allow() {
		t.Error("open circuit should reject requests")
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(3, time.Minute, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.State() != CircuitClosed {
		t.Errorf("expected closed, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(1, 10*time.Millisecond, 1)

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("expected probe request after reset timeout")
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("expected half-open, got %s", cb.State())
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("expected closed after successful probe, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(1, 10*time.Millisecond, 2)

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("expected probe request")
	}
	cb.RecordFailure()

	if cb.State() != CircuitOpen {
		t.Errorf("expected reopened circuit, got %s", cb.State())
	}
}

func TestCircuitState_String(t *testing.T) {
	tests := []struct {
		state CircuitState
		want  string
	}{
		{CircuitClosed, "closed"},
		{CircuitOpen, "open"},
		{CircuitHalfOpen, "half-open"},
		{CircuitState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("state %d: expected %q, got %q", tt.state, tt.want, got)
		}
	}
}
