// Package schedule provides the timed stage scheduler that drives the
// scripted workflow sequences.
package schedule

import (
	"sync"
	"time"
)

// Stage is one scheduled state change within a timed sequence: Action fires
// once, Offset after the sequence start.
type Stage struct {
	Offset time.Duration
	Action func()
}

// Scheduler schedules an ordered list of stages relative to a single
// sequence start time. Arming a new sequence, or cancelling, tears down
// every pending unfired action before anything new is scheduled, so a
// sequence can be restarted without duplicate or stale firings.
//
// The scheduler holds no business state beyond its pending timer handles.
// Actions run on timer goroutines; owners serialize their own state.
type Scheduler struct {
	mu     sync.Mutex
	gen    uint64
	timers []*time.Timer
}

// New creates an unarmed scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Arm cancels any previously scheduled-but-unfired actions and schedules the
// given stages relative to now. Each action fires at most once per arm;
// actions from a superseded arm never fire once the new arm begins.
func (s *Scheduler) Arm(stages []Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	gen := s.gen

	s.timers = make([]*time.Timer, 0, len(stages))
	for _, stage := range stages {
		action := stage.Action
		if action == nil {
			continue
		}
		t := time.AfterFunc(stage.Offset, func() {
			s.mu.Lock()
			live := s.gen == gen
			s.mu.Unlock()
			if live {
				action()
			}
		})
		s.timers = append(s.timers, t)
	}
}

// CancelAll stops every pending unfired action. It is unconditional and
// idempotent; calling it after teardown is safe.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.gen++
}

// Pending reports how many timer handles are still held. Fired or stopped
// handles are only released on the next Arm/CancelAll, so this is an upper
// bound used for introspection and tests.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) cancelLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
