package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedNotifier struct {
	err   error
	calls int
}

func (s *scriptedNotifier) SendWelcome(ctx context.Context, input SendWelcomeInput) error {
	s.calls++
	return s.err
}

func (s *scriptedNotifier) SendPasswordChanged(ctx context.Context, input SendPasswordChangedInput) error {
	s.calls++
	return s.err
}

func TestProtectedNotifierPassesThroughWhenHealthy(t *testing.T) {
	inner := &scriptedNotifier{}
	pn := NewProtectedNotifier(inner, ProtectedNotifierConfig{})

	err := pn.SendWelcome(context.Background(), SendWelcomeInput{Email: "john@example.com", Name: "john"})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestProtectedNotifierOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("provider down")}

	pn := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 3,
		Cooldown:         time.Minute,
	})

	ctx := context.Background()
	in := SendPasswordChangedInput{Email: "john@example.com"}

	for i := 0; i < 3; i++ {
		err := pn.SendPasswordChanged(ctx, in)

		if err == nil {
			t.Fatalf("call %d: expected provider error", i)
		}
	}

	// circuit is open now, calls fail fast without touching the provider
	err := pn.SendPasswordChanged(ctx, in)

	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	if inner.calls != 3 {
		t.Fatalf("expected the provider untouched after opening, got %d calls", inner.calls)
	}
}

func TestProtectedNotifierRecoversAfterCooldown(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("provider down")}

	pn := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 1,
		Cooldown:         10 * time.Millisecond,
	})

	ctx := context.Background()
	in := SendWelcomeInput{Email: "john@example.com", Name: "john"}

	if err := pn.SendWelcome(ctx, in); err == nil {
		t.Fatal("expected the first call to fail")
	}

	if err := pn.SendWelcome(ctx, in); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen while cooling down, got %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	// provider has recovered, the half-open trial should close the circuit
	inner.err = nil

	if err := pn.SendWelcome(ctx, in); err != nil {
		t.Fatalf("expected half-open trial to succeed, got %v", err)
	}

	if err := pn.SendWelcome(ctx, in); err != nil {
		t.Fatalf("expected circuit closed again, got %v", err)
	}
}
