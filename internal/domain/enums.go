// Package domain defines the core domain models for the gridiq service.
package domain

// Phase is one discrete step of the guided workflow.
type Phase string

const (
	PhaseAnalysis  Phase = "analysis"
	PhaseScenarios Phase = "scenarios"
	PhaseDecision  Phase = "decision"
	PhaseDispatch  Phase = "dispatch"
)

// PhaseOrder is the fixed forward order of the workflow phases.
var PhaseOrder = []Phase{PhaseAnalysis, PhaseScenarios, PhaseDecision, PhaseDispatch}

// TransitionAction is a user- or scheduler-initiated phase transition.
type TransitionAction string

const (
	ActionAdvance TransitionAction = "advance"
	ActionSelect  TransitionAction = "select"
	ActionDefer   TransitionAction = "defer"
	ActionApprove TransitionAction = "approve"
	ActionReset   TransitionAction = "reset"
)

// RunStatus represents the status of a workflow run.
type RunStatus string

const (
	RunStatusCreated RunStatus = "CREATED"
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusDone    RunStatus = "DONE"
	RunStatusClosed  RunStatus = "CLOSED"
)

// AgentStatus represents the status of a simulated analysis agent.
// Transitions only move forward (queued -> thinking -> complete) except on
// a full sequence restart.
type AgentStatus string

const (
	AgentStatusQueued   AgentStatus = "queued"
	AgentStatusThinking AgentStatus = "thinking"
	AgentStatusComplete AgentStatus = "complete"
)

// EventType represents the type of a recorded workflow event.
type EventType string

const (
	EventTypeRunStarted        EventType = "run_started"
	EventTypePhaseAdvanced     EventType = "phase_advanced"
	EventTypeAgentStatus       EventType = "agent_status"
	EventTypeFindingRevealed   EventType = "finding_revealed"
	EventTypeAnalysisComplete  EventType = "analysis_complete"
	EventTypeScenarioSelected  EventType = "scenario_selected"
	EventTypeSelectionDeferred EventType = "selection_deferred"
	EventTypeDispatchApproved  EventType = "dispatch_approved"
	EventTypeDispatchStep      EventType = "dispatch_step"
	EventTypeDispatchComplete  EventType = "dispatch_complete"
	EventTypeRunReset          EventType = "run_reset"
	EventTypeRunClosed         EventType = "run_closed"
)
