package workflow

import (
	"errors"
	"sync"
	"time"

	"github.com/harborgrid/gridiq/internal/catalog"
	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/internal/schedule"
)

var (
	// ErrUnknownScenario is returned for a selection referencing no known scenario.
	ErrUnknownScenario = errors.New("unknown scenario")
	// ErrUnknownOption is returned for an option not belonging to the selected scenario.
	ErrUnknownOption = errors.New("unknown option")
	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// Emitter receives every event a session produces, in firing order.
type Emitter func(evType domain.EventType, payload map[string]interface{})

// Options configures a session.
type Options struct {
	// ScenarioID deep-links the session into the decision phase when it
	// references a known scenario. An unknown reference is ignored and the
	// session starts in the initial phase.
	ScenarioID string
	// TimeScale multiplies the catalog stage offsets; <= 0 means 1.0.
	// Tests compress the timeline with small values.
	TimeScale float64
	Emit      Emitter
}

// Session coordinates one workflow run: it owns the phase machine, the
// per-agent run records, the dispatch checklist, and the two timed sequences
// (analysis and dispatch). All state is guarded by one mutex; stage actions
// fired by the schedulers take the same mutex and drop themselves when a
// restart or teardown superseded their sequence.
type Session struct {
	mu             sync.Mutex
	runID          string
	machine        *Machine
	status         domain.RunStatus
	agents         []domain.AgentRun
	steps          []domain.DispatchStep
	selectedOption string
	deepLinked     bool

	analysis *schedule.Scheduler
	dispatch *schedule.Scheduler
	scale    float64
	emit     Emitter

	// epoch invalidates in-flight stage actions across restarts; bumped on
	// every re-arm, reset, and close.
	epoch  uint64
	closed bool
}

// NewSession creates a session for the given run. The session is inert until
// Start is called.
func NewSession(runID string, opts Options) *Session {
	s := &Session{
		runID:    runID,
		status:   domain.RunStatusCreated,
		analysis: schedule.New(),
		dispatch: schedule.New(),
		scale:    opts.TimeScale,
		emit:     opts.Emit,
	}
	if s.scale <= 0 {
		s.scale = 1.0
	}

	if _, ok := catalog.ScenarioByID(opts.ScenarioID); ok && opts.ScenarioID != "" {
		s.machine = NewMachineAt(opts.ScenarioID)
		s.deepLinked = true
		s.agents = completedAgentRuns()
	} else {
		// Invalid deep links fall back to the default initial phase.
		s.machine = NewMachine()
		s.agents = initialAgentRuns()
	}
	s.steps = initialDispatchSteps()
	return s
}

// Start begins the run. A fresh session arms the analysis sequence; a
// deep-linked session enters the decision phase directly.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.status = domain.RunStatusRunning
	s.emitLocked(domain.EventTypeRunStarted, map[string]interface{}{
		"phase":     string(s.machine.Phase()),
		"deep_link": s.deepLinked,
	})
	if s.machine.Phase() == domain.PhaseAnalysis {
		s.armAnalysisLocked()
	}
	return nil
}

// Select applies the scenario selection transition.
func (s *Session) Select(scenarioID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if _, ok := catalog.ScenarioByID(scenarioID); !ok {
		return ErrUnknownScenario
	}
	if err := s.machine.Select(scenarioID); err != nil {
		return err
	}
	s.emitLocked(domain.EventTypeScenarioSelected, map[string]interface{}{
		"scenario_id": scenarioID,
	})
	return nil
}

// Advance skips the rest of the timed analysis sequence and moves straight
// to scenario selection.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.machine.Phase() != domain.PhaseAnalysis {
		return ErrInvalidTransition
	}
	s.epoch++
	s.analysis.CancelAll()
	s.finishAnalysisLocked()
	return nil
}

// Defer returns from the decision phase to scenario selection, discarding
// the selection.
func (s *Session) Defer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.machine.Defer(); err != nil {
		return err
	}
	s.selectedOption = ""
	s.emitLocked(domain.EventTypeSelectionDeferred, nil)
	return nil
}

// Approve moves to dispatch with the chosen option and arms the dispatch
// checklist sequence. Policy gating happens in the service layer before
// this is called.
func (s *Session) Approve(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.machine.Phase() == domain.PhaseDecision {
		if _, ok := catalog.OptionByID(s.machine.ScenarioID(), optionID); !ok {
			return ErrUnknownOption
		}
	}
	if err := s.machine.Approve(); err != nil {
		return err
	}
	s.selectedOption = optionID
	s.emitLocked(domain.EventTypeDispatchApproved, map[string]interface{}{
		"scenario_id": s.machine.ScenarioID(),
		"option_id":   optionID,
	})
	s.armDispatchLocked()
	return nil
}

// Reset cancels all pending stages, clears selection and completion state,
// and restarts the journey from the analysis phase.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.epoch++
	s.analysis.CancelAll()
	s.dispatch.CancelAll()

	s.machine.Reset()
	s.selectedOption = ""
	s.agents = initialAgentRuns()
	s.steps = initialDispatchSteps()
	s.status = domain.RunStatusRunning
	s.emitLocked(domain.EventTypeRunReset, nil)
	s.armAnalysisLocked()
	return nil
}

// Close tears the session down. Pending stage actions are cancelled and
// nothing mutates state afterwards. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
	s.analysis.CancelAll()
	s.dispatch.CancelAll()
	s.status = domain.RunStatusClosed
	s.emitLocked(domain.EventTypeRunClosed, nil)
}

// Snapshot returns a copy of the observable run state.
func (s *Session) Snapshot() domain.RunSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]domain.AgentRun, len(s.agents))
	copy(agents, s.agents)
	steps := make([]domain.DispatchStep, len(s.steps))
	copy(steps, s.steps)

	return domain.RunSnapshot{
		RunID:            s.runID,
		Status:           s.status,
		Phase:            s.machine.Phase(),
		SelectedScenario: s.machine.ScenarioID(),
		SelectedOption:   s.selectedOption,
		Agents:           agents,
		DispatchSteps:    steps,
	}
}

// Phase returns the active phase.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Phase()
}

// ScenarioID returns the selected scenario, if any.
func (s *Session) ScenarioID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.ScenarioID()
}

// Sequence arming. Both sequences reset their dependent state before
// scheduling, per the restart contract.

func (s *Session) armAnalysisLocked() {
	s.epoch++
	epoch := s.epoch
	s.agents = initialAgentRuns()

	var stages []schedule.Stage
	for i, agent := range catalog.AnalysisAgents() {
		idx := i
		stages = append(stages, schedule.Stage{
			Offset: s.offset(agent.StartMs),
			Action: s.fire(epoch, func() { s.setAgentStatusLocked(idx, domain.AgentStatusThinking) }),
		})
		for f := 1; f <= len(agent.Findings); f++ {
			count := f
			stages = append(stages, schedule.Stage{
				Offset: s.offset(agent.StartMs + count*agent.RevealStepMs),
				Action: s.fire(epoch, func() { s.revealLocked(idx, count) }),
			})
		}
		stages = append(stages, schedule.Stage{
			Offset: s.offset(agent.DoneMs),
			Action: s.fire(epoch, func() { s.setAgentStatusLocked(idx, domain.AgentStatusComplete) }),
		})
	}
	stages = append(stages, schedule.Stage{
		Offset: s.offset(catalog.AnalysisAdvanceMs),
		Action: s.fire(epoch, s.finishAnalysisLocked),
	})

	s.analysis.Arm(stages)
}

func (s *Session) armDispatchLocked() {
	s.epoch++
	epoch := s.epoch
	s.steps = initialDispatchSteps()

	var stages []schedule.Stage
	for i, step := range catalog.DispatchChecklist() {
		idx := i
		stages = append(stages, schedule.Stage{
			Offset: s.offset(step.DoneMs),
			Action: s.fire(epoch, func() { s.completeStepLocked(idx) }),
		})
	}
	stages = append(stages, schedule.Stage{
		Offset: s.offset(catalog.DispatchCompleteMs),
		Action: s.fire(epoch, s.finishDispatchLocked),
	})

	s.dispatch.Arm(stages)
}

// fire wraps a stage mutation so it only runs if its sequence is still the
// live one and the session has not been torn down.
func (s *Session) fire(epoch uint64, fn func()) func() {
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || epoch != s.epoch {
			return
		}
		fn()
	}
}

func (s *Session) setAgentStatusLocked(idx int, status domain.AgentStatus) {
	if idx < 0 || idx >= len(s.agents) {
		return
	}
	// Statuses only move forward within a sequence.
	if agentStatusRank(status) <= agentStatusRank(s.agents[idx].Status) {
		return
	}
	s.agents[idx].Status = status
	s.emitLocked(domain.EventTypeAgentStatus, map[string]interface{}{
		"agent_id": s.agents[idx].AgentID,
		"status":   string(status),
	})
}

func (s *Session) revealLocked(idx, count int) {
	if idx < 0 || idx >= len(s.agents) {
		return
	}
	agent := &s.agents[idx]
	if count > len(agent.Findings) {
		count = len(agent.Findings)
	}
	// Non-decreasing, bounded by the agent's total finding count.
	if count <= agent.Revealed {
		return
	}
	agent.Revealed = count
	s.emitLocked(domain.EventTypeFindingRevealed, map[string]interface{}{
		"agent_id": agent.AgentID,
		"revealed": count,
		"finding":  agent.Findings[count-1],
	})
}

func (s *Session) finishAnalysisLocked() {
	for i := range s.agents {
		if s.agents[i].Status != domain.AgentStatusComplete {
			s.agents[i].Status = domain.AgentStatusComplete
		}
		s.agents[i].Revealed = len(s.agents[i].Findings)
	}
	if err := s.machine.Advance(); err != nil {
		return
	}
	s.emitLocked(domain.EventTypeAnalysisComplete, nil)
	s.emitLocked(domain.EventTypePhaseAdvanced, map[string]interface{}{
		"phase": string(domain.PhaseScenarios),
	})
}

func (s *Session) completeStepLocked(idx int) {
	if idx < 0 || idx >= len(s.steps) || s.steps[idx].Done {
		return
	}
	s.steps[idx].Done = true
	s.emitLocked(domain.EventTypeDispatchStep, map[string]interface{}{
		"step_id": s.steps[idx].StepID,
	})
}

func (s *Session) finishDispatchLocked() {
	for i := range s.steps {
		s.steps[i].Done = true
	}
	s.status = domain.RunStatusDone
	s.emitLocked(domain.EventTypeDispatchComplete, nil)
}

func (s *Session) emitLocked(evType domain.EventType, payload map[string]interface{}) {
	if s.emit == nil {
		return
	}
	s.emit(evType, payload)
}

func (s *Session) offset(ms int) time.Duration {
	return time.Duration(float64(ms) * s.scale * float64(time.Millisecond))
}

func agentStatusRank(status domain.AgentStatus) int {
	switch status {
	case domain.AgentStatusThinking:
		return 1
	case domain.AgentStatusComplete:
		return 2
	default:
		return 0
	}
}

func initialAgentRuns() []domain.AgentRun {
	agents := catalog.AnalysisAgents()
	out := make([]domain.AgentRun, len(agents))
	for i, a := range agents {
		out[i] = domain.AgentRun{
			AgentID:  a.ID,
			Name:     a.Name,
			Status:   domain.AgentStatusQueued,
			Findings: a.Findings,
		}
	}
	return out
}

func completedAgentRuns() []domain.AgentRun {
	out := initialAgentRuns()
	for i := range out {
		out[i].Status = domain.AgentStatusComplete
		out[i].Revealed = len(out[i].Findings)
	}
	return out
}

func initialDispatchSteps() []domain.DispatchStep {
	steps := catalog.DispatchChecklist()
	out := make([]domain.DispatchStep, len(steps))
	for i, st := range steps {
		out[i] = domain.DispatchStep{StepID: st.ID, Label: st.Label}
	}
	return out
}
