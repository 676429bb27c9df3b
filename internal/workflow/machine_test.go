package workflow

import (
	"errors"
	"testing"

	"github.com/harborgrid/gridiq/internal/domain"
)

func TestHappyPathReachesDispatchInThreeTransitions(t *testing.T) {
	m := NewMachine()
	if m.Phase() != domain.PhaseAnalysis {
		t.Fatalf("expected initial phase analysis, got %s", m.Phase())
	}

	if err := m.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := m.Select("scn-shore-power"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := m.Approve(); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if m.Phase() != domain.PhaseDispatch {
		t.Fatalf("expected dispatch after 3 transitions, got %s", m.Phase())
	}
}

func TestDeferDiscardsSelection(t *testing.T) {
	m := NewMachine()
	if err := m.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := m.Select("scn-fuel-drift"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := m.Defer(); err != nil {
		t.Fatalf("defer: %v", err)
	}
	if m.Phase() != domain.PhaseScenarios {
		t.Fatalf("expected scenarios after defer, got %s", m.Phase())
	}
	if m.ScenarioID() != "" {
		t.Fatalf("expected selection cleared, got %q", m.ScenarioID())
	}
}

func TestResetReturnsToInitialPhaseFromAnywhere(t *testing.T) {
	m := NewMachine()
	m.Advance()
	m.Select("scn-biscay-storm")
	m.Approve()

	m.Reset()
	if m.Phase() != domain.PhaseAnalysis {
		t.Fatalf("expected analysis after reset, got %s", m.Phase())
	}
	if m.ScenarioID() != "" {
		t.Fatalf("expected selection cleared after reset, got %q", m.ScenarioID())
	}
}

func TestInvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	m := NewMachine()

	if err := m.Select("scn-shore-power"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for select from analysis, got %v", err)
	}
	if err := m.Approve(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for approve from analysis, got %v", err)
	}
	if err := m.Defer(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for defer from analysis, got %v", err)
	}
	if m.Phase() != domain.PhaseAnalysis {
		t.Fatalf("phase changed on invalid transition: %s", m.Phase())
	}

	m.Advance()
	if err := m.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for repeated advance, got %v", err)
	}
}

func TestDeepLinkMachineStartsInDecision(t *testing.T) {
	m := NewMachineAt("scn-shore-power")
	if m.Phase() != domain.PhaseDecision {
		t.Fatalf("expected decision phase, got %s", m.Phase())
	}
	if m.ScenarioID() != "scn-shore-power" {
		t.Fatalf("expected selection carried, got %q", m.ScenarioID())
	}
}
