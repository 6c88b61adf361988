package rules

import (
	"context"

	"prcheck/internal/data"
)

type Rule interface {
	ID() string
	Title() string
	Description() string

	// Evaluate runs rule logic against the fetched snapshot only.
	// Rules MUST NOT call GitHub APIs.
	Evaluate(ctx context.Context, pr *data.PullRequestSnapshot) (Result, error)
}

type Option struct {
	Name        string
	Description string
	Default     string
}

type ConfigurableRule interface {
	Rule
	Options() []Option
	Configure(opts map[string]string) error
}
