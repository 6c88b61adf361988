package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"prcheck/internal/cicontext"
	"prcheck/internal/config"
	"prcheck/internal/engine"
	"prcheck/internal/flags"
	gh "prcheck/internal/github"
)

var cfg = config.New()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the pull request of the current CI run",
	Long: `Check a pull request and publish the result as a single status comment.

The pull request is resolved from the CI environment:
	- GitHub Actions: GITHUB_REPOSITORY and the "number" field of GITHUB_EVENT_PATH
	- CircleCI: CIRCLE_PULL_REQUEST, CIRCLE_PROJECT_USERNAME, CIRCLE_PROJECT_REPONAME
	- Manual: --repo OWNER/REPO --pr N
When the run is not for a pull request the check is skipped and exits 0.

Authentication:
	--token, or the GITHUB_TOKEN environment variable. The token needs read
	access to pull requests and write access to issue comments.

Status comment:
	The comment body starts with the marker <!-- pr-check -->. Each run edits the
	first comment carrying the marker, or creates one when none exists. With
	--dry-run the body is printed and nothing is written.

Output:
	Console output is controlled by --console-format. Text mode prints one line
	per rule and a closing summary with the comment action and exit code.
	--out / --out-format write a JSON report document or an NDJSON stream to a file.

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, rule.result, run.finished).

Exit codes:
	0 = all checks passed, or not a pull request build
	1 = at least one check failed
	2 = GitHub API or transport error
	3 = configuration error

Examples:
	# GitHub Actions (token from the workflow)
	GITHUB_TOKEN=${{ secrets.GITHUB_TOKEN }} prcheck check

	# Stricter title prefixes
	prcheck check --set title-format.pattern='^(feat|fix|chore)(\([^)]+\))?: .+'

	# Preview the comment for a specific pull request
	prcheck check --repo acme/widgets --pr 42 --dry-run
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitConfigError)
		}

		ctx := cmd.Context()
		adapter, err := cicontext.Select(ctx, cfg.Target.Provider, cicontext.Manual{Repo: cfg.Target.Repo, Number: cfg.Target.PR}, envconfig.OsLookuper())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitConfigError)
		}

		eng := engine.NewEngine(adapter, githubClientFactory(cfg))
		os.Exit(eng.Run(ctx, cfg))
	},
}

func githubClientFactory(cfg *config.Config) engine.ClientFactory {
	return func(ctx context.Context, token string) (engine.Client, error) {
		opts := []gh.Option{gh.WithVerbose(cfg.Runtime.Verbose, nil)}
		if cfg.Target.APIURL != "" {
			opts = append(opts, gh.WithBaseURL(cfg.Target.APIURL))
		}
		client, err := gh.NewClient(ctx, token, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Target
	checkCmd.Flags().StringVar(&cfg.Target.Provider, flags.FlagProvider, "auto", "CI provider: auto|github-actions|circleci|manual")
	checkCmd.Flags().StringVar(&cfg.Target.Repo, flags.FlagRepo, "", "Repository as OWNER/REPO (manual runs; use with --pr)")
	checkCmd.Flags().IntVar(&cfg.Target.PR, flags.FlagPR, 0, "Pull request number (manual runs; use with --repo)")
	checkCmd.Flags().StringVar(&cfg.Target.Token, flags.FlagToken, "", "GitHub token; falls back to $GITHUB_TOKEN")
	checkCmd.Flags().StringVar(&cfg.Target.APIURL, flags.FlagAPIURL, "", "GitHub REST API base URL for GitHub Enterprise Server")

	// Rules
	checkCmd.Flags().StringVar(&cfg.Rules.Selector, flags.FlagRules, "", "Comma-separated rule IDs to run (empty = all rules)")
	checkCmd.Flags().StringArrayVar(&cfg.Rules.Set, flags.FlagSet, nil, "Per-rule option as ruleID.option=value (repeatable; the value is taken verbatim)")

	// Output
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson")
	checkCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL). Comma-separated.")
	checkCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured results to this path")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson; inferred from the file extension when empty")
	checkCmd.Flags().BoolVar(&cfg.Output.DryRun, flags.FlagDryRun, false, "Print the comment body instead of writing it")

	// Runtime
	checkCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Timeout for the whole run (0 = none)")
}
