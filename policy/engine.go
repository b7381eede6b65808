// Package policy evaluates whether a board mutation is allowed.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decision values returned by the board policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.board_policy.decision"),
		rego.Module("board_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes a board mutation to be evaluated.
type Input struct {
	Action string `json:"action"`
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

// Evaluate checks the board policy. Returns the decision (allow or block).
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionAllow, nil
}

// DefaultPolicy is the default board policy. Free-text status labels stay
// allowed; only a handful of obviously broken mutations are blocked.
const DefaultPolicy = `
package board_policy

import rego.v1

default decision := "allow"

# A status label, when present, must be non-empty.
decision := "block" if {
	input.action in {"statusUpdate", "updateTask"}
	trim_space(input.status) == ""
}

# Reject board actions outside the known vocabulary.
decision := "block" if {
	not input.action in {"statusUpdate", "updateTask", "createTask"}
}
`

// NewDefaultEngine builds an engine with DefaultPolicy.
func NewDefaultEngine(ctx context.Context) (*Engine, error) {
	return NewEngine(ctx, DefaultPolicy)
}
