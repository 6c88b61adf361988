// Package cicontext resolves which pull request a CI run is for.
//
// Each supported CI provider exposes the pull request differently; adapters
// hide that behind a single ResolvePR call. A false result means the run is
// not for a pull request and the check does not apply. Any error returned by
// an adapter is a configuration problem with the CI environment.
package cicontext

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Target identifies one pull request.
type Target struct {
	Owner  string
	Repo   string
	Number int
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s#%d", t.Owner, t.Repo, t.Number)
}

type Adapter interface {
	Name() string
	ResolvePR(ctx context.Context) (Target, bool, error)
}

const (
	ProviderAuto          = "auto"
	ProviderGitHubActions = "github-actions"
	ProviderCircleCI      = "circleci"
	ProviderManual        = "manual"
)

// Providers lists the accepted --provider values.
var Providers = []string{ProviderAuto, ProviderGitHubActions, ProviderCircleCI, ProviderManual}

type detectEnv struct {
	GitHubActions bool `env:"GITHUB_ACTIONS"`
	CircleCI      bool `env:"CIRCLECI"`
}

// Select returns the adapter for provider. With ProviderAuto, an explicit
// manual reference wins, then GitHub Actions, then CircleCI; if nothing is
// detected the returned adapter always reports "not applicable".
func Select(ctx context.Context, provider string, manual Manual, lookuper envconfig.Lookuper) (Adapter, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderManual:
		return &manual, nil
	case ProviderGitHubActions:
		return &GitHubActions{Lookuper: lookuper}, nil
	case ProviderCircleCI:
		return &CircleCI{Lookuper: lookuper}, nil
	case ProviderAuto, "":
	default:
		return nil, fmt.Errorf("unsupported provider %q (must be one of: %s)", provider, strings.Join(Providers, ", "))
	}

	if manual.Repo != "" || manual.Number != 0 {
		return &manual, nil
	}

	var env detectEnv
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &env, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("detect CI provider: %w", err)
	}
	switch {
	case env.GitHubActions:
		return &GitHubActions{Lookuper: lookuper}, nil
	case env.CircleCI:
		return &CircleCI{Lookuper: lookuper}, nil
	}
	return notDetected{}, nil
}

type notDetected struct{}

func (notDetected) Name() string { return "none" }

func (notDetected) ResolvePR(ctx context.Context) (Target, bool, error) {
	return Target{}, false, nil
}

// SplitRepo parses OWNER/REPO.
func SplitRepo(full string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(full), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected OWNER/REPO", full)
	}
	return owner, repo, nil
}

var errNoRepo = errors.New("repository owner and name are required")
