package cicontext

import (
	"context"
	"fmt"
)

// Manual is an explicit OWNER/REPO plus PR number from the command line.
type Manual struct {
	Repo   string
	Number int
}

func (m *Manual) Name() string { return ProviderManual }

func (m *Manual) ResolvePR(ctx context.Context) (Target, bool, error) {
	if m.Repo == "" {
		return Target{}, false, fmt.Errorf("--repo: %w", errNoRepo)
	}
	owner, repo, err := SplitRepo(m.Repo)
	if err != nil {
		return Target{}, false, err
	}
	if m.Number <= 0 {
		return Target{}, false, fmt.Errorf("--pr must be a positive pull request number (got %d)", m.Number)
	}
	return Target{Owner: owner, Repo: repo, Number: m.Number}, true, nil
}
