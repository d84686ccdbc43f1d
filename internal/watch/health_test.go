package watch

import (
	"errors"
	"testing"
)

func TestEscalatorTriggersAtThreshold(t *testing.T) {
	e := newEscalator(5)
	err := errors.New("boom")

	for i := 1; i <= 4; i++ {
		if e.record(err) {
			t.Fatalf("escalated after %d failures, threshold is 5", i)
		}
	}
	if !e.record(err) {
		t.Fatal("did not escalate at 5 consecutive failures")
	}
}

func TestEscalatorResetOnSuccess(t *testing.T) {
	e := newEscalator(5)
	err := errors.New("boom")

	for i := 0; i < 4; i++ {
		e.record(err)
	}
	e.reset()
	if got := e.count(); got != 0 {
		t.Fatalf("count after reset = %d, want 0", got)
	}

	// A fresh run of failures starts the count over.
	for i := 1; i <= 4; i++ {
		if e.record(err) {
			t.Fatalf("escalated after %d post-reset failures", i)
		}
	}
}
