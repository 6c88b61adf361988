package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"prcheck/internal/data"
	"prcheck/internal/rules"
)

type AssigneeSetRule struct {
	min int
}

func (r *AssigneeSetRule) ID() string {
	return "assignee-set"
}

func (r *AssigneeSetRule) Title() string {
	return "Assignee set"
}

func (r *AssigneeSetRule) Description() string {
	return "Verifies that the pull request has an assignee so ownership is clear."
}

func (r *AssigneeSetRule) Options() []rules.Option {
	return []rules.Option{
		{
			Name:        "min",
			Description: "Minimum number of assignees. Must be >= 1.",
			Default:     "1",
		},
	}
}

func (r *AssigneeSetRule) Configure(opts map[string]string) error {
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

func (r *AssigneeSetRule) Evaluate(ctx context.Context, pr *data.PullRequestSnapshot) (rules.Result, error) {
	want := r.min
	if want < 1 {
		want = 1
	}
	if len(pr.Assignees) >= want {
		return rules.PassResult(pr, r), nil
	}
	if want == 1 {
		return rules.FailResult(pr, r, "An assignee must be set so ownership is clear."), nil
	}
	return rules.FailResult(pr, r, fmt.Sprintf("At least %d assignees must be set (found %d).", want, len(pr.Assignees))), nil
}
