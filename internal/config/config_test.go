package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Target.Provider != "auto" {
		t.Errorf("Provider = %q, want auto", cfg.Target.Provider)
	}
	if cfg.Output.ConsoleFormat != "text" {
		t.Errorf("ConsoleFormat = %q, want text", cfg.Output.ConsoleFormat)
	}
	if cfg.Runtime.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Runtime.Timeout)
	}
}

func TestParseRuleOptionAssignments(t *testing.T) {
	got, err := ParseRuleOptionAssignments([]string{
		"title-format.pattern=^feat: ",
		" assignee-set.min=2",
		"",
		"labels-set.min=", // empty value allowed
	})
	if err != nil {
		t.Fatalf("ParseRuleOptionAssignments returned error: %v", err)
	}
	want := map[string]map[string]string{
		"title-format": {"pattern": "^feat: "},
		"assignee-set": {"min": "2"},
		"labels-set":   {"min": ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRuleOptionAssignments_KeepsCommasInValues(t *testing.T) {
	got, err := ParseRuleOptionAssignments([]string{
		"title-format.pattern=^[a-z]{2,10}: .+",
		"required-labels.names=bug,feature",
	})
	if err != nil {
		t.Fatalf("ParseRuleOptionAssignments returned error: %v", err)
	}
	want := map[string]map[string]string{
		"title-format":    {"pattern": "^[a-z]{2,10}: .+"},
		"required-labels": {"names": "bug,feature"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRuleOptionAssignments_ErrorsOnInvalidSyntax(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "missing_equals", values: []string{"a.b"}},
		{name: "missing_dot", values: []string{"ab=true"}},
		{name: "empty_rule", values: []string{".b=true"}},
		{name: "empty_opt", values: []string{"a.=true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRuleOptionAssignments(tt.values); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_Target(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "auto default", mutate: func(c *Config) {}},
		{name: "manual with repo and pr", mutate: func(c *Config) {
			c.Target.Provider = "Manual"
			c.Target.Repo = "acme/widgets"
			c.Target.PR = 4
		}},
		{name: "auto with repo and pr", mutate: func(c *Config) {
			c.Target.Repo = "acme/widgets"
			c.Target.PR = 4
		}},
		{name: "manual without pr", wantErr: true, mutate: func(c *Config) {
			c.Target.Provider = "manual"
		}},
		{name: "repo without pr", wantErr: true, mutate: func(c *Config) {
			c.Target.Repo = "acme/widgets"
		}},
		{name: "pr without repo", wantErr: true, mutate: func(c *Config) {
			c.Target.PR = 4
		}},
		{name: "negative pr", wantErr: true, mutate: func(c *Config) {
			c.Target.Repo = "acme/widgets"
			c.Target.PR = -1
		}},
		{name: "unknown provider", wantErr: true, mutate: func(c *Config) {
			c.Target.Provider = "jenkins"
		}},
		{name: "api url", mutate: func(c *Config) {
			c.Target.APIURL = "https://ghe.example.com/api/v3"
		}},
		{name: "api url without scheme", wantErr: true, mutate: func(c *Config) {
			c.Target.APIURL = "ghe.example.com/api/v3"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesProvider(t *testing.T) {
	cfg := New()
	cfg.Target.Provider = "  GitHub-Actions "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.Target.Provider != "github-actions" {
		t.Fatalf("Provider = %q", cfg.Target.Provider)
	}
}

func TestValidate_RejectsInvalidSetSyntax(t *testing.T) {
	cfg := New()
	cfg.Rules.Set = []string{"nope"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_KeepsSetEntriesWhole(t *testing.T) {
	cfg := New()
	cfg.Rules.Set = []string{"title-format.pattern=^[a-z]{2,10}: .+", "  "}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	want := []string{"title-format.pattern=^[a-z]{2,10}: .+"}
	if diff := cmp.Diff(want, cfg.Rules.Set); diff != "" {
		t.Fatalf("Set mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ConsoleFormat(t *testing.T) {
	tests := []struct {
		consoleFormat string
		wantErr       bool
	}{
		{consoleFormat: "text"},
		{consoleFormat: "JSON"},
		{consoleFormat: "ndjson"},
		{consoleFormat: "", wantErr: true},
		{consoleFormat: "   ", wantErr: true},
		{consoleFormat: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.consoleFormat, func(t *testing.T) {
			cfg := New()
			cfg.Output.ConsoleFormat = tt.consoleFormat
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ConsoleFilterStatus(t *testing.T) {
	cfg := New()
	cfg.Output.ConsoleFilterStatus = []string{"fail, pass"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"FAIL", "PASS"}, cfg.Output.ConsoleFilterStatus); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	cfg = New()
	cfg.Output.ConsoleFilterStatus = []string{"ERROR"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for ERROR status")
	}
}

func TestValidate_OutFormat(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		outFormat string
		want      string
		wantErr   bool
	}{
		{name: "json by extension", out: "results.json", want: "json"},
		{name: "ndjson by extension", out: "results.ndjson", want: "ndjson"},
		{name: "jsonl by extension", out: "results.jsonl", want: "ndjson"},
		{name: "explicit", out: "results.txt", outFormat: "NDJSON", want: "ndjson"},
		{name: "missing extension", out: "results", wantErr: true},
		{name: "unknown extension", out: "results.csv", wantErr: true},
		{name: "unknown format", out: "results.json", outFormat: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Output.Out = tt.out
			cfg.Output.OutFormat = tt.outFormat
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Output.OutFormat != tt.want {
				t.Fatalf("OutFormat = %q, want %q", cfg.Output.OutFormat, tt.want)
			}
		})
	}
}

func TestValidate_RejectsNegativeTimeout(t *testing.T) {
	cfg := New()
	cfg.Runtime.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error, got nil")
	}

	cfg = New()
	cfg.Runtime.Timeout = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero timeout must be allowed: %v", err)
	}
}
