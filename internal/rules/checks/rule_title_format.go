package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"prcheck/internal/data"
	"prcheck/internal/rules"
)

// DefaultTitlePattern accepts "<type>(optional-scope): description", e.g.
// "feat(core): add scoring API" or "fix: handle 500s". The match is anchored
// at the start only.
const DefaultTitlePattern = `^[a-z]+(\([^)]+\))?: .+`

type TitleFormatRule struct {
	pattern *regexp.Regexp
}

func (r *TitleFormatRule) ID() string {
	return "title-format"
}

func (r *TitleFormatRule) Title() string {
	return "Title format"
}

func (r *TitleFormatRule) Description() string {
	return "Verifies that the pull request title follows `<type>(optional-domain): description`."
}

func (r *TitleFormatRule) Options() []rules.Option {
	return []rules.Option{
		{
			Name:        "pattern",
			Description: "Regular expression the title must match (start-anchored).",
			Default:     DefaultTitlePattern,
		},
	}
}

func (r *TitleFormatRule) Configure(opts map[string]string) error {
	expr := DefaultTitlePattern
	if v := strings.TrimSpace(opts["pattern"]); v != "" {
		expr = v
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid value for pattern: %w", err)
	}
	r.pattern = re
	return nil
}

func (r *TitleFormatRule) Evaluate(ctx context.Context, pr *data.PullRequestSnapshot) (rules.Result, error) {
	if r.pattern == nil {
		if err := r.Configure(nil); err != nil {
			return rules.Result{}, err
		}
	}

	if !matchesFromStart(r.pattern, pr.Title) {
		return rules.FailResult(pr, r,
			"Title must follow the format `<type>(optional-domain): description` "+
				"(for example: `feat(core): add scoring API`)."), nil
	}
	return rules.PassResult(pr, r), nil
}

// matchesFromStart reports whether re matches a prefix of s, whether or not
// the expression itself is anchored.
func matchesFromStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}
