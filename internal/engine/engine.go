// Package engine runs one pull request check: resolve the pull request from
// the CI context, fetch it, evaluate the rules, publish the status comment and
// map the outcome to an exit code.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chainguard-dev/clog"

	"prcheck/internal/cicontext"
	"prcheck/internal/config"
	"prcheck/internal/data"
	gh "prcheck/internal/github"
	"prcheck/internal/output"
	"prcheck/internal/report"
	"prcheck/internal/rules"
)

// Client is the subset of the GitHub API a check needs.
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*data.PullRequestSnapshot, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]data.Comment, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error)
	EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error
}

// ClientFactory builds a Client once the token is known.
type ClientFactory func(ctx context.Context, token string) (Client, error)

// Summary describes what a check did.
type Summary struct {
	// Applicable is false when the CI run is not for a pull request.
	Applicable bool
	Target     cicontext.Target
	Outcome    *rules.Outcome
	Body       string
	Comment    CommentAction
	CommentID  int64
}

func (s *Summary) failed() bool {
	return s != nil && s.Outcome != nil && s.Outcome.Failed()
}

type Engine struct {
	adapter   cicontext.Adapter
	newClient ClientFactory
	stdout    io.Writer
}

func NewEngine(adapter cicontext.Adapter, newClient ClientFactory) *Engine {
	return &Engine{adapter: adapter, newClient: newClient, stdout: os.Stdout}
}

// SetOutput redirects console sinks and dry-run bodies. nil restores stdout.
func (e *Engine) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	e.stdout = w
}

// Run executes the check and returns the process exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	if cfg.Runtime.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Runtime.Timeout)
		defer cancel()
	}

	sum, err := e.Check(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", presentError(err, cfg.Runtime.Verbose))
	}
	return exitCodeFor(err, sum.failed())
}

// Check performs the sequential pipeline. The returned Summary is non-nil
// even on error and reflects how far the run got.
func (e *Engine) Check(ctx context.Context, cfg *config.Config) (*Summary, error) {
	log := clog.FromContext(ctx)
	sum := &Summary{}

	selected, err := resolveAndConfigureRules(cfg)
	if err != nil {
		return sum, err
	}

	if e.adapter == nil {
		return sum, configErrorf("no CI context adapter configured")
	}
	target, ok, err := e.adapter.ResolvePR(ctx)
	if err != nil {
		return sum, &ConfigError{Err: fmt.Errorf("resolve pull request (%s): %w", e.adapter.Name(), err)}
	}
	if !ok {
		log.Infof("Not a pull request build (provider=%s); nothing to check", e.adapter.Name())
		return sum, nil
	}
	sum.Applicable = true
	sum.Target = target
	log = log.With("pr", target.String())

	token, source := gh.ResolveAuthToken(cfg.Target.Token)
	if token == "" {
		return sum, configErrorf("GitHub auth token is required (set GITHUB_TOKEN or pass --token)")
	}
	log.Debugf("Using GitHub token from %s", source)

	if e.newClient == nil {
		return sum, configErrorf("no GitHub client factory configured")
	}
	client, err := e.newClient(ctx, token)
	if err != nil {
		return sum, &ConfigError{Err: fmt.Errorf("create GitHub client: %w", err)}
	}

	pr, err := client.GetPullRequest(ctx, target.Owner, target.Repo, target.Number)
	if err != nil {
		return sum, &APIError{Op: "fetch pull request", Err: err}
	}

	outMgr, err := setupOutputManager(cfg, e.stdout)
	if err != nil {
		return sum, &ConfigError{Err: fmt.Errorf("create output sinks: %w", err)}
	}
	defer func() {
		if err := outMgr.Close(); err != nil {
			log.Warnf("Closing output sinks: %v", err)
		}
	}()

	if err := outMgr.Started(target.String(), len(selected)); err != nil {
		log.Warnf("Writing run.started: %v", err)
	}

	outcome, err := rules.Evaluate(ctx, selected, pr)
	if err != nil {
		return sum, &ConfigError{Err: err}
	}
	sum.Outcome = outcome
	if err := outMgr.Outcome(outcome); err != nil {
		log.Warnf("Writing results: %v", err)
	}

	body, err := report.Compose(outcome, pr)
	if err != nil {
		return sum, err
	}
	sum.Body = body

	if cfg.Output.DryRun {
		sum.Comment = CommentSkipped
		fmt.Fprintln(e.stdout, sum.Body)
	} else {
		action, id, err := UpsertStatusComment(ctx, client, target, sum.Body)
		if err != nil {
			return sum, err
		}
		sum.Comment = action
		sum.CommentID = id
	}

	if err := outMgr.Finished(target.String(), outcome, string(sum.Comment), exitCodeFor(nil, outcome.Failed())); err != nil {
		log.Warnf("Writing run.finished: %v", err)
	}
	if outcome.Failed() {
		log.Infof("%d of %d checks failed", len(outcome.Violations()), len(outcome.Results))
	}
	return sum, nil
}

func setupOutputManager(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	console, err := output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)
	if err != nil {
		return nil, err
	}
	sinks := []output.Sink{console}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}

	return output.NewManager(sinks...)
}

func resolveAndConfigureRules(cfg *config.Config) ([]rules.Rule, error) {
	selected, err := rules.Resolve(cfg.Rules.Selector)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("resolve rules: %w", err)}
	}
	if err := applyRuleOptionsIfAny(cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return selected, nil
}

// applyRuleOptionsIfAny routes repeated --set ruleID.option=value flags to the
// matching rule's Configure method.
//
//	prcheck check --set title-format.pattern='^(feat|fix): '
func applyRuleOptionsIfAny(cfg *config.Config) error {
	if len(cfg.Rules.Set) == 0 {
		return nil
	}

	assignments, err := config.ParseRuleOptionAssignments(cfg.Rules.Set)
	if err != nil {
		return err
	}

	byID := make(map[string]rules.Rule)
	for _, r := range rules.List() {
		byID[r.ID()] = r
	}

	for ruleID, opts := range assignments {
		r, ok := byID[ruleID]
		if !ok {
			return fmt.Errorf("unknown rule ID %q", ruleID)
		}
		cr, ok := r.(rules.ConfigurableRule)
		if !ok {
			return fmt.Errorf("rule %q does not support options", ruleID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cr.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for rule %q", name, ruleID)
			}
		}

		if err := cr.Configure(opts); err != nil {
			return fmt.Errorf("configure rule %q: %w", ruleID, err)
		}
	}

	return nil
}
