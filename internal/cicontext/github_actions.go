package cicontext

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

type actionsEnv struct {
	// Repository is "owner/repo".
	Repository string `env:"GITHUB_REPOSITORY"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`
}

// GitHubActions reads the pull request number from the workflow event payload.
type GitHubActions struct {
	Lookuper envconfig.Lookuper
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

func (a *GitHubActions) Name() string { return ProviderGitHubActions }

func (a *GitHubActions) ResolvePR(ctx context.Context) (Target, bool, error) {
	log := clog.FromContext(ctx)

	var env actionsEnv
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &env, Lookuper: a.lookuper()}); err != nil {
		return Target{}, false, fmt.Errorf("read GitHub Actions environment: %w", err)
	}
	if env.Repository == "" || env.EventPath == "" {
		log.Infof("Not running inside GitHub Actions with pull_request context.")
		return Target{}, false, nil
	}

	owner, repo, err := SplitRepo(env.Repository)
	if err != nil {
		return Target{}, false, fmt.Errorf("GITHUB_REPOSITORY: %w", err)
	}

	readFile := a.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	raw, err := readFile(env.EventPath)
	if err != nil {
		return Target{}, false, fmt.Errorf("read event payload: %w", err)
	}

	var event struct {
		Number any `json:"number"`
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return Target{}, false, fmt.Errorf("parse event payload %s: %w", env.EventPath, err)
	}

	n, ok := eventNumber(event.Number)
	if !ok {
		log.Infof("No PR number found in event payload; skipping.")
		return Target{}, false, nil
	}

	return Target{Owner: owner, Repo: repo, Number: n}, true, nil
}

func (a *GitHubActions) lookuper() envconfig.Lookuper {
	if a.Lookuper == nil {
		return envconfig.OsLookuper()
	}
	return a.Lookuper
}

// eventNumber accepts a positive integral JSON number (or numeric string).
// Missing, null, false, zero and anything else is "no PR".
func eventNumber(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case string:
		return PRNumberFromURL(n)
	default:
		return 0, false
	}
}
