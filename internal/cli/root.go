package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"prcheck/internal/engine"
	"prcheck/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "prcheck",
	SilenceErrors: true,
	Short:         "Validate pull request hygiene and report it as a PR comment",
	Long: `prcheck validates a pull request's title, assignees and labels from CI and
keeps a single status comment on the pull request up to date.

Examples:
	# Show available commands and global flags
	prcheck --help

	# Check the pull request of the current CI run
	prcheck check

	# Check a specific pull request without writing the comment
	prcheck check --repo acme/widgets --pr 42 --dry-run

	# List rules
	prcheck rules list

	# Print build info
	prcheck version

Output:
	Results go to stdout; logs go to stderr.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmd.SetContext(clog.WithLogger(cmd.Context(), newLogger(os.Stderr, cfg.Runtime.Verbose)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable debug logging (prints every GitHub API call and full error details)")
}

func newLogger(w io.Writer, verbose bool) *clog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return clog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// Execute runs the root command. Commands exit on their own once they start
// running, so an error here is a flag or usage problem.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(engine.ExitConfigError)
	}
}
