package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"prcheck/internal/data"
	"prcheck/internal/rules"
)

type LabelsSetRule struct {
	min int
}

func (r *LabelsSetRule) ID() string {
	return "labels-set"
}

func (r *LabelsSetRule) Title() string {
	return "Labels set"
}

func (r *LabelsSetRule) Description() string {
	return "Verifies that at least one label is applied to the pull request."
}

func (r *LabelsSetRule) Options() []rules.Option {
	return []rules.Option{
		{
			Name:        "min",
			Description: "Minimum number of labels. Must be >= 1.",
			Default:     "1",
		},
	}
}

func (r *LabelsSetRule) Configure(opts map[string]string) error {
	r.min = 1
	if v := strings.TrimSpace(opts["min"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for min: %s", v)
		}
		if n < 1 {
			return fmt.Errorf("min must be >= 1 (got %d)", n)
		}
		r.min = n
	}
	return nil
}

func (r *LabelsSetRule) Evaluate(ctx context.Context, pr *data.PullRequestSnapshot) (rules.Result, error) {
	want := r.min
	if want < 1 {
		want = 1
	}
	if len(pr.Labels) >= want {
		return rules.PassResult(pr, r), nil
	}
	if want == 1 {
		return rules.FailResult(pr, r, "At least one label must be applied to the PR."), nil
	}
	return rules.FailResult(pr, r, fmt.Sprintf("At least %d labels must be applied to the PR (found %d).", want, len(pr.Labels))), nil
}
