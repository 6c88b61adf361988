package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"prcheck/internal/report"
	"prcheck/internal/rules"
)

var rulesListQuiet bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List and describe the pull request checks",
	Long: `List and describe the pull request checks.

"prcheck check" evaluates rules in the order listed here, which is also the
row order of the status comment. Options are set per run with
--set ruleID.option=value.

Examples:
  prcheck rules list
  prcheck rules show title-format
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in evaluation order",
	Long: `List the checks built into this binary in evaluation order.

Output:
  A markdown table with the position, ID, title and options of each rule.
  With -q only the rule IDs are printed, one per line.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rulesListQuiet {
			for _, r := range rules.List() {
				fmt.Fprintln(cmd.OutOrStdout(), r.ID())
			}
			return nil
		}
		return writeRuleTable(cmd.OutOrStdout(), rules.List())
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show RULE-ID",
	Short: "Describe one rule and its --set options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		all := rules.List()
		for i, r := range all {
			if r.ID() == id {
				describeRule(cmd.OutOrStdout(), r, i+1, len(all))
				return nil
			}
		}
		return fmt.Errorf("rule not found: %s", id)
	},
}

func writeRuleTable(w io.Writer, list []rules.Rule) error {
	table := report.NewMarkdownTable(w, []string{"#", "Rule", "Checks", "Options"})
	for i, r := range list {
		if err := table.Append([]string{fmt.Sprint(i + 1), r.ID(), r.Title(), strings.Join(optionNames(r), ", ")}); err != nil {
			return fmt.Errorf("list rule %s: %w", r.ID(), err)
		}
	}
	return table.Render()
}

func optionNames(r rules.Rule) []string {
	cr, ok := r.(rules.ConfigurableRule)
	if !ok {
		return nil
	}
	var names []string
	for _, opt := range cr.Options() {
		names = append(names, opt.Name)
	}
	return names
}

var (
	ruleHeading = color.New(color.Bold)
	setFlag     = color.New(color.FgCyan)
)

// describeRule prints a rule the way "rules show" renders it, e.g.
//
//	title-format: Title format (rule 1 of 3)
//	Verifies that ...
//
//	  --set title-format.pattern=VALUE
//	      Regular expression the title must match (start-anchored).
//	      default: ^[a-z]+(\([^)]+\))?: .+
func describeRule(w io.Writer, r rules.Rule, pos, total int) {
	ruleHeading.Fprintf(w, "%s: %s", r.ID(), r.Title())
	fmt.Fprintf(w, " (rule %d of %d)\n", pos, total)
	fmt.Fprintln(w, r.Description())

	cr, ok := r.(rules.ConfigurableRule)
	if !ok || len(cr.Options()) == 0 {
		fmt.Fprintln(w, "\nNo options.")
		return
	}
	fmt.Fprintln(w)
	for _, opt := range cr.Options() {
		setFlag.Fprintf(w, "  --set %s.%s=VALUE\n", r.ID(), opt.Name)
		fmt.Fprintf(w, "      %s\n", opt.Description)
		def := opt.Default
		if def == "" {
			def = "(empty)"
		}
		fmt.Fprintf(w, "      default: %s\n", def)
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print rule IDs")
	rulesCmd.AddCommand(rulesShowCmd)
}
