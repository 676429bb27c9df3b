package domain

import (
	"encoding/json"
	"time"
)

// Run represents a single workflow run.
type Run struct {
	RunID      string     `json:"run_id"`
	VesselID   string     `json:"vessel_id,omitempty"`
	ScenarioID string     `json:"scenario_id,omitempty"`
	Status     RunStatus  `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// Event represents a recorded workflow event for replay.
type Event struct {
	EventID string          `json:"event_id"`
	RunID   string          `json:"run_id"`
	Ts      int64           `json:"ts"` // Unix milliseconds
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AgentRun is the live record of one simulated analysis agent within a run.
type AgentRun struct {
	AgentID  string      `json:"agent_id"`
	Name     string      `json:"name"`
	Status   AgentStatus `json:"status"`
	Revealed int         `json:"revealed"`
	Findings []string    `json:"findings"`
}

// DispatchStep is one checklist step of the dispatch phase.
type DispatchStep struct {
	StepID string `json:"step_id"`
	Label  string `json:"label"`
	Done   bool   `json:"done"`
}

// RunSnapshot is the full observable state of a run.
type RunSnapshot struct {
	RunID            string         `json:"run_id"`
	Status           RunStatus      `json:"status"`
	Phase            Phase          `json:"phase"`
	SelectedScenario string         `json:"selected_scenario,omitempty"`
	SelectedOption   string         `json:"selected_option,omitempty"`
	Agents           []AgentRun     `json:"agents"`
	DispatchSteps    []DispatchStep `json:"dispatch_steps"`
}

// CreateRunRequest is the request to create a workflow run.
type CreateRunRequest struct {
	VesselID string `json:"vessel_id,omitempty"`
	// ScenarioID deep-links the run straight into the decision phase when it
	// references a known scenario; unknown IDs fall back to the initial phase.
	ScenarioID string `json:"scenario_id,omitempty"`
}

// TransitionRequest is a phase-transition request for a run.
type TransitionRequest struct {
	Action     TransitionAction `json:"action"`
	ScenarioID string           `json:"scenario_id,omitempty"`
	OptionID   string           `json:"option_id,omitempty"`
	// Acknowledged confirms a dispatch that the policy gate flagged as
	// requiring operator acknowledgement.
	Acknowledged bool `json:"acknowledged,omitempty"`
}
