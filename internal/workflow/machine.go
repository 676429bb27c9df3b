// Package workflow implements the Grid IQ phase state machine and the
// per-run session that coordinates its timed sequences.
package workflow

import (
	"errors"
	"fmt"

	"github.com/harborgrid/gridiq/internal/domain"
)

// ErrInvalidTransition is returned when a transition is not valid for the
// machine's current phase. The machine state is unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// Machine tracks which of the four ordered workflow phases is active.
// Exactly one phase is active at a time; the common path is forward-only and
// reset makes the machine cyclic.
type Machine struct {
	phase      domain.Phase
	scenarioID string
}

// NewMachine creates a machine in the initial phase.
func NewMachine() *Machine {
	return &Machine{phase: domain.PhaseAnalysis}
}

// NewMachineAt creates a machine deep-linked into the decision phase with
// the given selection. Callers must have validated the scenario reference;
// an unvalidated deep link belongs in the initial phase instead.
func NewMachineAt(scenarioID string) *Machine {
	return &Machine{phase: domain.PhaseDecision, scenarioID: scenarioID}
}

// Phase returns the active phase.
func (m *Machine) Phase() domain.Phase {
	return m.phase
}

// ScenarioID returns the selection carried into the decision phase, if any.
func (m *Machine) ScenarioID() string {
	return m.scenarioID
}

// Advance moves from analysis to scenario selection. It is driven by the
// analysis sequence reporting completion, not by user action.
func (m *Machine) Advance() error {
	if m.phase != domain.PhaseAnalysis {
		return fmt.Errorf("%w: advance from %s", ErrInvalidTransition, m.phase)
	}
	m.phase = domain.PhaseScenarios
	return nil
}

// Select moves from scenario selection to the decision phase, carrying the
// selected scenario as context.
func (m *Machine) Select(scenarioID string) error {
	if m.phase != domain.PhaseScenarios {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, m.phase)
	}
	m.phase = domain.PhaseDecision
	m.scenarioID = scenarioID
	return nil
}

// Defer moves back from the decision phase to scenario selection, discarding
// the current selection.
func (m *Machine) Defer() error {
	if m.phase != domain.PhaseDecision {
		return fmt.Errorf("%w: defer from %s", ErrInvalidTransition, m.phase)
	}
	m.phase = domain.PhaseScenarios
	m.scenarioID = ""
	return nil
}

// Approve moves from the decision phase to dispatch.
func (m *Machine) Approve() error {
	if m.phase != domain.PhaseDecision {
		return fmt.Errorf("%w: approve from %s", ErrInvalidTransition, m.phase)
	}
	m.phase = domain.PhaseDispatch
	return nil
}

// Reset returns to the initial phase from anywhere, clearing the selection.
func (m *Machine) Reset() {
	m.phase = domain.PhaseAnalysis
	m.scenarioID = ""
}
