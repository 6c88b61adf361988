package rules

import (
	"context"
	"fmt"

	"prcheck/internal/data"
)

// Outcome is the computed result of one check run: every evaluated rule in
// evaluation order. It is never persisted.
type Outcome struct {
	Results []Result
}

// Evaluate runs each rule against the snapshot in the given order.
func Evaluate(ctx context.Context, selected []Rule, pr *data.PullRequestSnapshot) (*Outcome, error) {
	if pr == nil {
		return nil, fmt.Errorf("evaluate: nil pull request snapshot")
	}
	out := &Outcome{Results: make([]Result, 0, len(selected))}
	for _, r := range selected {
		res, err := r.Evaluate(ctx, pr)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %q: %w", r.ID(), err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// Passed maps rule ID to pass/fail.
func (o *Outcome) Passed() map[string]bool {
	m := make(map[string]bool, len(o.Results))
	for _, r := range o.Results {
		m[r.RuleID] = r.Passed()
	}
	return m
}

// Violations returns the messages of failed rules in evaluation order.
func (o *Outcome) Violations() []string {
	var msgs []string
	for _, r := range o.Results {
		if !r.Passed() {
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}

// Failed reports whether any rule failed.
func (o *Outcome) Failed() bool {
	for _, r := range o.Results {
		if !r.Passed() {
			return true
		}
	}
	return false
}
