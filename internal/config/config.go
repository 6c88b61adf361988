package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep the CLI
	// flags in internal/cli/check.go and the names in internal/flags in sync.
	Target  Target
	Rules   Rules
	Output  Output
	Runtime Runtime
}

type Target struct {
	// Provider selects how the pull request is resolved (see --provider).
	// Allowed values: auto, github-actions, circleci, manual.
	Provider string

	// Repo is the OWNER/REPO of the pull request for manual runs (see --repo).
	Repo string

	// PR is the pull request number for manual runs (see --pr). 0 means unset.
	PR int

	// Token overrides GITHUB_TOKEN (see --token).
	Token string

	// APIURL points the client at a GitHub Enterprise Server API (see --api-url).
	// Empty means api.github.com.
	APIURL string
}

type Rules struct {
	// Selector selects which rules to run.
	// Empty means all rules; otherwise a comma-separated list of rule IDs (see --rules).
	Selector string

	// Set provides per-rule option overrides from the CLI.
	// Entries are of the form ruleID.option=value (repeatable; comma-separated accepted; see --set).
	Set []string
}

type Output struct {
	// ConsoleFormat controls the console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by result status (see --console-filter-status).
	// Allowed values: PASS, FAIL.
	ConsoleFilterStatus []string

	// Out writes structured results to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// DryRun evaluates the rules and prints the comment body without writing it (see --dry-run).
	DryRun bool
}

type Runtime struct {
	// Timeout bounds the whole run (see --timeout). 0 means no timeout.
	Timeout time.Duration

	// Verbose enables debug logging, including every GitHub API call.
	Verbose bool
}

func New() *Config {
	return &Config{
		Target: Target{
			Provider: "auto",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Rules.Set = dropBlank(c.Rules.Set)
	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)
	c.Target.Repo = strings.TrimSpace(c.Target.Repo)

	// Target validation
	c.Target.Provider = normalizeEnumValue(c.Target.Provider)
	if c.Target.Provider == "" {
		c.Target.Provider = "auto"
	}
	switch c.Target.Provider {
	case "auto", "github-actions", "circleci", "manual":
	default:
		return fmt.Errorf("unsupported --provider: %s (must be one of: auto, github-actions, circleci, manual)", c.Target.Provider)
	}
	if c.Target.PR < 0 {
		return errors.New("--pr must be >= 1")
	}
	if (c.Target.Repo == "") != (c.Target.PR == 0) {
		return errors.New("--repo and --pr must be provided together")
	}
	if c.Target.Provider == "manual" && c.Target.PR == 0 {
		return errors.New("--provider manual requires --repo and --pr")
	}
	if c.Target.APIURL != "" {
		u, err := url.Parse(c.Target.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid --api-url %q: expected an http(s) URL", c.Target.APIURL)
		}
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}
	for i, st := range c.Output.ConsoleFilterStatus {
		v := strings.ToUpper(st)
		if v != "PASS" && v != "FAIL" {
			return fmt.Errorf("unsupported --console-filter-status: %s (must be PASS or FAIL)", st)
		}
		c.Output.ConsoleFilterStatus[i] = v
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			case "":
				return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
			default:
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	// Runtime validation
	if c.Runtime.Timeout < 0 {
		return errors.New("--timeout must be >= 0")
	}

	// Rule option syntax validation (rule.option=value)
	if len(c.Rules.Set) > 0 {
		if _, err := ParseRuleOptionAssignments(c.Rules.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseRuleOptionAssignments parses values of the form "ruleID.option=value".
//
// Each entry is one assignment; commas inside the value are kept, so
// patterns like "^[a-z]{2,10}: .+" survive intact. Everything after the
// first "=" is the value, taken verbatim. Only syntax is validated here; rule
// IDs and option names are checked when the options are applied. Empty
// values are allowed ("rule.option=").
func ParseRuleOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range dropBlank(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected rule.option=value", raw)
		}
		ruleID, opt, ok := strings.Cut(strings.TrimSpace(left), ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected rule.option=value", raw)
		}
		ruleID = strings.TrimSpace(ruleID)
		opt = strings.TrimSpace(opt)
		if ruleID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty rule and option", raw)
		}
		if _, ok := out[ruleID]; !ok {
			out[ruleID] = make(map[string]string)
		}
		out[ruleID][opt] = value
	}
	return out, nil
}

func dropBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
