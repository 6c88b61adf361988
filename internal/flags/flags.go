// Package flags defines canonical CLI flag names shared across the CLI and
// engine. These are flag names without leading dashes.
//
//	cmd.Flags().StringVar(&cfg.Target.Repo, flags.FlagRepo, "", "...")
package flags

const (
	// Target
	FlagProvider = "provider"
	FlagRepo     = "repo"
	FlagPR       = "pr"
	FlagToken    = "token"
	FlagAPIURL   = "api-url"

	// Rules
	FlagRules = "rules"
	FlagSet   = "set"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagDryRun              = "dry-run"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
