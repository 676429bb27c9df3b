package schedule

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *recorder) record(label string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.fired = append(r.fired, label)
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.fired))
	copy(out, r.fired)
	return out
}

func TestArmFiresAllStagesInOrder(t *testing.T) {
	r := &recorder{}
	s := New()
	s.Arm([]Stage{
		{Offset: 10 * time.Millisecond, Action: r.record("a")},
		{Offset: 30 * time.Millisecond, Action: r.record("b")},
		{Offset: 50 * time.Millisecond, Action: r.record("c")},
	})

	time.Sleep(150 * time.Millisecond)

	got := r.snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 fired stages, got %v", got)
	}
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected firing order a,b,c, got %v", got)
	}
}

func TestRearmCancelsPreviousSequence(t *testing.T) {
	r := &recorder{}
	s := New()

	// First arm would fire after 40ms; the immediate re-arm must supersede
	// it before anything fires.
	s.Arm([]Stage{
		{Offset: 40 * time.Millisecond, Action: r.record("old")},
		{Offset: 60 * time.Millisecond, Action: r.record("old")},
	})
	s.Arm([]Stage{
		{Offset: 20 * time.Millisecond, Action: r.record("new")},
	})

	time.Sleep(150 * time.Millisecond)

	got := r.snapshot()
	if len(got) != 1 || got[0] != "new" {
		t.Fatalf("expected only the final arm's action to fire, got %v", got)
	}
}

func TestCancelAllStopsPendingActions(t *testing.T) {
	r := &recorder{}
	s := New()
	s.Arm([]Stage{
		{Offset: 40 * time.Millisecond, Action: r.record("x")},
		{Offset: 60 * time.Millisecond, Action: r.record("y")},
	})
	s.CancelAll()

	time.Sleep(120 * time.Millisecond)

	if got := r.snapshot(); len(got) != 0 {
		t.Fatalf("expected no fired actions after cancel, got %v", got)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending handles after cancel, got %d", s.Pending())
	}
}

func TestCancelAllIsIdempotent(t *testing.T) {
	s := New()
	s.Arm([]Stage{{Offset: 20 * time.Millisecond, Action: func() {}}})
	s.CancelAll()
	s.CancelAll()
	s.CancelAll()
	if s.Pending() != 0 {
		t.Fatalf("expected no pending handles, got %d", s.Pending())
	}
}

func TestNilActionsAreSkipped(t *testing.T) {
	r := &recorder{}
	s := New()
	s.Arm([]Stage{
		{Offset: 5 * time.Millisecond, Action: nil},
		{Offset: 10 * time.Millisecond, Action: r.record("only")},
	})

	time.Sleep(60 * time.Millisecond)

	if got := r.snapshot(); len(got) != 1 || got[0] != "only" {
		t.Fatalf("unexpected fired actions: %v", got)
	}
}
