// Package catalog holds the fixed demo records behind the Grid IQ flow:
// scenarios, decision options, the simulated analysis agents with their
// pre-authored findings and timings, and the dispatch checklist.
package catalog

// Scenario is a static grid/fleet scenario the operator can select.
type Scenario struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Severity  string           `json:"severity"` // low, medium, high, critical
	Summary   string           `json:"summary"`
	ImpactUSD float64          `json:"impact_usd"`
	Metrics   []Metric         `json:"metrics,omitempty"`
	Options   []DecisionOption `json:"options"`
}

// Metric is a display metric attached to a scenario.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DecisionOption is one dispatch option for a scenario.
type DecisionOption struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Pros      []string `json:"pros,omitempty"`
	Cons      []string `json:"cons,omitempty"`
	ImpactUSD float64  `json:"impact_usd"`
	Risk      string   `json:"risk"` // low, medium, high
}

// AnalysisAgent is one simulated agent of the analysis phase. StartMs is the
// offset at which it flips to thinking, findings reveal every RevealStepMs
// after that, and the agent completes DoneMs after sequence start.
type AnalysisAgent struct {
	ID           string
	Name         string
	StartMs      int
	RevealStepMs int
	DoneMs       int
	Findings     []string
}

// DispatchStep is one step of the dispatch checklist, marked done DoneMs
// after the dispatch sequence starts.
type DispatchStep struct {
	ID     string
	Label  string
	DoneMs int
}

var scenarios = []Scenario{
	{
		ID:        "scn-shore-power",
		Title:     "Shore-power shortfall at Rotterdam berth",
		Severity:  "high",
		Summary:   "Berth 12 shore connection is limited to 6.5 MW for the next window; hotel load plus reefer demand projects 8.1 MW.",
		ImpactUSD: 310000,
		Metrics: []Metric{
			{Label: "Projected load", Value: "8.1 MW"},
			{Label: "Shore capacity", Value: "6.5 MW"},
			{Label: "Window", Value: "14:00-22:00 CET"},
		},
		Options: []DecisionOption{
			{
				ID:      "opt-genset-bridge",
				Title:   "Bridge the gap with auxiliary gensets",
				Summary: "Run two auxiliary gensets in parallel with shore power during the peak window.",
				Pros:    []string{"No cargo operations impact", "Available immediately"},
				Cons:    []string{"Adds local emissions in an ECA port", "Fuel cost during the window"},
				ImpactUSD: 42000,
				Risk:      "medium",
			},
			{
				ID:      "opt-reefer-shed",
				Title:   "Shed non-critical reefer load",
				Summary: "Stagger reefer duty cycles and defer non-critical hotel loads to stay under the shore cap.",
				Pros:    []string{"Zero additional emissions", "No fuel burn"},
				Cons:    []string{"Requires cargo-care sign-off", "Tight temperature margins on two blocks"},
				ImpactUSD: 9000,
				Risk:      "high",
			},
		},
	},
	{
		ID:        "scn-fuel-drift",
		Title:     "Fuel consumption drift on Nordic Aurora",
		Severity:  "medium",
		Summary:   "Main engine SFOC is trending 4.2% above the charter baseline over the last three voyages.",
		ImpactUSD: 85000,
		Metrics: []Metric{
			{Label: "SFOC drift", Value: "+4.2%"},
			{Label: "Trend window", Value: "3 voyages"},
			{Label: "Hull age since clean", Value: "11 months"},
		},
		Options: []DecisionOption{
			{
				ID:      "opt-hull-clean",
				Title:   "Schedule hull and propeller cleaning",
				Summary: "Book an in-water clean at the next Singapore call and verify SFOC recovery on the following leg.",
				Pros:    []string{"Addresses the likely root cause", "Recovers charter margin"},
				Cons:    []string{"One-day port stay extension"},
				ImpactUSD: 38000,
				Risk:      "low",
			},
			{
				ID:      "opt-speed-trim",
				Title:   "Trim service speed by 0.8 kn",
				Summary: "Absorb the drift with a speed reduction until the next scheduled docking.",
				Pros:    []string{"No off-hire time"},
				Cons:    []string{"Schedule buffer erodes", "Does not fix the cause"},
				ImpactUSD: 12000,
				Risk:      "medium",
			},
		},
	},
	{
		ID:        "scn-biscay-storm",
		Title:     "Storm cell on the Biscay crossing",
		Severity:  "critical",
		Summary:   "A deepening low is forecast across the planned track with significant wave heights above 7 m at ETA.",
		ImpactUSD: 540000,
		Metrics: []Metric{
			{Label: "Sig. wave height", Value: "7.4 m"},
			{Label: "ETA exposure", Value: "18 h"},
			{Label: "Cargo", Value: "Project cargo on deck"},
		},
		Options: []DecisionOption{
			{
				ID:      "opt-reroute-west",
				Title:   "Reroute west of the system",
				Summary: "Add 140 nm to pass the low on its navigable semicircle.",
				Pros:    []string{"Keeps motions inside cargo limits", "Predictable arrival"},
				Cons:    []string{"12 h delay", "Extra fuel"},
				ImpactUSD: 96000,
				Risk:      "low",
			},
			{
				ID:      "opt-hold-brest",
				Title:   "Hold at anchorage off Brest",
				Summary: "Wait 24 h for the system to clear before crossing.",
				Pros:    []string{"Lowest weather exposure"},
				Cons:    []string{"Longest delay", "Anchorage congestion risk"},
				ImpactUSD: 150000,
				Risk:      "low",
			},
		},
	},
}

var analysisAgents = []AnalysisAgent{
	{
		ID: "agent-load", Name: "Load Forecast",
		StartMs: 300, RevealStepMs: 600, DoneMs: 2500,
		Findings: []string{
			"Hotel load peaks at 3.4 MW between 18:00 and 21:00",
			"Reefer demand adds 4.7 MW at 85% duty cycle",
			"Peak overlap window is 3.2 hours",
		},
	},
	{
		ID: "agent-grid", Name: "Grid Stability",
		StartMs: 600, RevealStepMs: 600, DoneMs: 2900,
		Findings: []string{
			"Shore feeder can tolerate 8% transient overdraw for under 5 minutes",
			"Bus-tie configuration allows split running",
			"No stability margin for simultaneous bow-thruster tests",
		},
	},
	{
		ID: "agent-fuel", Name: "Fuel Optimization",
		StartMs: 900, RevealStepMs: 650, DoneMs: 3300,
		Findings: []string{
			"Auxiliary genset burn projected at 1.9 t MGO for the window",
			"Current bunker ROB covers contingency with 12% margin",
			"ECA surcharge applies to any local generation",
		},
	},
	{
		ID: "agent-weather", Name: "Weather Routing",
		StartMs: 1200, RevealStepMs: 650, DoneMs: 3700,
		Findings: []string{
			"No weather constraint on the berth window",
			"Departure leg clear for 48 hours",
			"Wind peak 22 kn does not affect crane operations",
		},
	},
	{
		ID: "agent-maint", Name: "Maintenance",
		StartMs: 1500, RevealStepMs: 700, DoneMs: 4100,
		Findings: []string{
			"Genset 2 is 310 running hours from its next service",
			"Genset 3 available, last load test 9 days ago",
			"No open work orders block parallel operation",
		},
	},
	{
		ID: "agent-compliance", Name: "Compliance",
		StartMs: 1800, RevealStepMs: 700, DoneMs: 4500,
		Findings: []string{
			"Port emission cap permits 2 hours of local generation per call",
			"ESG report must log any genset hours at berth",
			"Charterer notification required above 50 kUSD deviation",
		},
	},
}

var dispatchSteps = []DispatchStep{
	{ID: "step-notify", Label: "Notify bridge and engine control room", DoneMs: 500},
	{ID: "step-loadplan", Label: "Publish the updated load plan", DoneMs: 1200},
	{ID: "step-sync", Label: "Synchronize genset controllers", DoneMs: 1900},
	{ID: "step-handshake", Label: "Confirm shore-power handshake", DoneMs: 2600},
	{ID: "step-esg", Label: "Log the ESG compliance entry", DoneMs: 3300},
}

// AnalysisAdvanceMs is the offset at which the analysis sequence reports
// completion and the workflow advances to scenario selection.
const AnalysisAdvanceMs = 5200

// DispatchCompleteMs is the offset at which the dispatch sequence reports
// completion.
const DispatchCompleteMs = 3900

// Scenarios returns the fixed scenario list.
func Scenarios() []Scenario {
	return scenarios
}

// ScenarioByID looks up a scenario by ID.
func ScenarioByID(id string) (*Scenario, bool) {
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i], true
		}
	}
	return nil, false
}

// OptionByID looks up a decision option within a scenario.
func OptionByID(scenarioID, optionID string) (*DecisionOption, bool) {
	scn, ok := ScenarioByID(scenarioID)
	if !ok {
		return nil, false
	}
	for i := range scn.Options {
		if scn.Options[i].ID == optionID {
			return &scn.Options[i], true
		}
	}
	return nil, false
}

// AnalysisAgents returns the simulated analysis agents.
func AnalysisAgents() []AnalysisAgent {
	return analysisAgents
}

// DispatchChecklist returns the dispatch checklist steps.
func DispatchChecklist() []DispatchStep {
	return dispatchSteps
}
