package cicontext

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

type circleEnv struct {
	PullRequest string `env:"CIRCLE_PULL_REQUEST"`
	Owner       string `env:"CIRCLE_PROJECT_USERNAME"`
	Repo        string `env:"CIRCLE_PROJECT_REPONAME"`
}

// CircleCI takes the pull request number from the tail of the PR URL.
type CircleCI struct {
	Lookuper envconfig.Lookuper
}

func (c *CircleCI) Name() string { return ProviderCircleCI }

func (c *CircleCI) ResolvePR(ctx context.Context) (Target, bool, error) {
	log := clog.FromContext(ctx)

	lookuper := c.Lookuper
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var env circleEnv
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &env, Lookuper: lookuper}); err != nil {
		return Target{}, false, fmt.Errorf("read CircleCI environment: %w", err)
	}
	if env.PullRequest == "" {
		log.Infof("Not a PR build, skipping PR check.")
		return Target{}, false, nil
	}

	n, ok := PRNumberFromURL(env.PullRequest)
	if !ok {
		log.Warnf("Could not find a PR number in CIRCLE_PULL_REQUEST=%q; skipping.", env.PullRequest)
		return Target{}, false, nil
	}
	if env.Owner == "" || env.Repo == "" {
		return Target{}, false, fmt.Errorf("CIRCLE_PROJECT_USERNAME/CIRCLE_PROJECT_REPONAME: %w", errNoRepo)
	}

	return Target{Owner: env.Owner, Repo: env.Repo, Number: n}, true, nil
}

// PRNumberFromURL returns the final "/"-delimited segment of a PR URL as a
// number, after stripping trailing slashes.
func PRNumberFromURL(raw string) (int, bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return 0, false
	}
	last := trimmed[strings.LastIndex(trimmed, "/")+1:]
	n, err := strconv.Atoi(last)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
