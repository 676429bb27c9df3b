package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine gating dispatch approvals.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.dispatch_policy.decision"),
		rego.Module("dispatch_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the dispatch policy.
// Input is a map with keys: scenario_id, option_id, severity, impact_usd.
// Returns the decision string: allow, require_ack, or block.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means a broken
		// policy rather than a permissive one.
		return "", fmt.Errorf("policy returned no decision")
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("policy returned unexpected type %T", val)
}

// DefaultPolicy is the default dispatch policy content.
const DefaultPolicy = `
package dispatch_policy

import rego.v1

default decision := "allow"

# Critical scenarios always need an explicit operator acknowledgement.
decision := "require_ack" if {
	input.severity == "critical"
}

# Expensive mitigations need an acknowledgement regardless of severity.
decision := "require_ack" if {
	input.impact_usd >= 250000
}
`
