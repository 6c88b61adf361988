package cicontext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func writeEvent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestPRNumberFromURL(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"https://host/x/y/pull/42/", 42, true},
		{"https://github.com/acme/api/pull/7", 7, true},
		{"https://github.com/acme/api/pull/7///", 7, true},
		{"42", 42, true},
		{"https://github.com/acme/api/pull/", 0, false},
		{"https://github.com/acme/api/pull/abc", 0, false},
		{"https://github.com/acme/api/pull/0", 0, false},
		{"", 0, false},
		{"///", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := PRNumberFromURL(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("PRNumberFromURL(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGitHubActions_ResolvePR(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		env      map[string]string
		event    string // written to a temp file and wired into GITHUB_EVENT_PATH when non-empty
		want     Target
		wantOK   bool
		wantErr  bool
		readFail bool
	}{
		{
			name:   "pull_request event",
			env:    map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event:  `{"number": 42, "pull_request": {"title": "x"}}`,
			want:   Target{Owner: "acme", Repo: "api", Number: 42},
			wantOK: true,
		},
		{
			name:   "number as string",
			env:    map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event:  `{"number": "9"}`,
			want:   Target{Owner: "acme", Repo: "api", Number: 9},
			wantOK: true,
		},
		{
			name:  "push event without number",
			env:   map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event: `{"ref": "refs/heads/main"}`,
		},
		{
			name:  "zero number",
			env:   map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event: `{"number": 0}`,
		},
		{
			name:  "null number",
			env:   map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event: `{"number": null}`,
		},
		{
			name:  "false number",
			env:   map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event: `{"number": false}`,
		},
		{
			name: "no repository",
			env:  map[string]string{"GITHUB_EVENT_PATH": "/does/not/matter"},
		},
		{
			name: "no event path",
			env:  map[string]string{"GITHUB_REPOSITORY": "acme/api"},
		},
		{
			name:    "malformed repository",
			env:     map[string]string{"GITHUB_REPOSITORY": "acme"},
			event:   `{"number": 1}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			env:     map[string]string{"GITHUB_REPOSITORY": "acme/api"},
			event:   `{not json`,
			wantErr: true,
		},
		{
			name:     "unreadable event file",
			env:      map[string]string{"GITHUB_REPOSITORY": "acme/api", "GITHUB_EVENT_PATH": "/nonexistent/event.json"},
			wantErr:  true,
			readFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := make(map[string]string, len(tt.env)+1)
			for k, v := range tt.env {
				env[k] = v
			}
			if tt.event != "" {
				env["GITHUB_EVENT_PATH"] = writeEvent(t, tt.event)
			}

			a := &GitHubActions{Lookuper: envconfig.MapLookuper(env)}
			got, ok, err := a.ResolvePR(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got target %v ok=%v", got, ok)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePR returned error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("target = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubActions_NoReadWhenNotApplicable(t *testing.T) {
	a := &GitHubActions{
		Lookuper: envconfig.MapLookuper(map[string]string{}),
		ReadFile: func(string) ([]byte, error) {
			t.Fatal("event file must not be read when context is missing")
			return nil, nil
		},
	}
	if _, ok, err := a.ResolvePR(context.Background()); ok || err != nil {
		t.Fatalf("expected not applicable, got ok=%v err=%v", ok, err)
	}
}

func TestCircleCI_ResolvePR(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Target
		wantOK  bool
		wantErr bool
	}{
		{
			name: "pull request build",
			env: map[string]string{
				"CIRCLE_PULL_REQUEST":     "https://github.com/acme/api/pull/42/",
				"CIRCLE_PROJECT_USERNAME": "acme",
				"CIRCLE_PROJECT_REPONAME": "api",
			},
			want:   Target{Owner: "acme", Repo: "api", Number: 42},
			wantOK: true,
		},
		{
			name: "branch build",
			env: map[string]string{
				"CIRCLE_PROJECT_USERNAME": "acme",
				"CIRCLE_PROJECT_REPONAME": "api",
			},
		},
		{
			name: "unusable url",
			env: map[string]string{
				"CIRCLE_PULL_REQUEST":     "https://github.com/acme/api/pull/new",
				"CIRCLE_PROJECT_USERNAME": "acme",
				"CIRCLE_PROJECT_REPONAME": "api",
			},
		},
		{
			name: "missing project",
			env: map[string]string{
				"CIRCLE_PULL_REQUEST": "https://github.com/acme/api/pull/42",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CircleCI{Lookuper: envconfig.MapLookuper(tt.env)}
			got, ok, err := c.ResolvePR(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePR returned error: %v", err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("got %v ok=%v; want %v ok=%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestManual_ResolvePR(t *testing.T) {
	m := &Manual{Repo: "acme/api", Number: 5}
	got, ok, err := m.ResolvePR(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected target, got ok=%v err=%v", ok, err)
	}
	if got.String() != "acme/api#5" {
		t.Fatalf("unexpected target %s", got)
	}

	for _, bad := range []Manual{{Repo: "", Number: 1}, {Repo: "acme", Number: 1}, {Repo: "acme/api", Number: 0}, {Repo: "a/b/c", Number: 1}} {
		if _, _, err := bad.ResolvePR(context.Background()); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		provider string
		manual   Manual
		env      map[string]string
		wantName string
		wantErr  bool
	}{
		{name: "auto github actions", provider: "auto", env: map[string]string{"GITHUB_ACTIONS": "true"}, wantName: ProviderGitHubActions},
		{name: "auto circleci", provider: "", env: map[string]string{"CIRCLECI": "true"}, wantName: ProviderCircleCI},
		{name: "auto prefers actions", provider: "auto", env: map[string]string{"GITHUB_ACTIONS": "true", "CIRCLECI": "true"}, wantName: ProviderGitHubActions},
		{name: "auto manual wins", provider: "auto", manual: Manual{Repo: "acme/api", Number: 1}, env: map[string]string{"GITHUB_ACTIONS": "true"}, wantName: ProviderManual},
		{name: "auto nothing detected", provider: "auto", env: map[string]string{}, wantName: "none"},
		{name: "explicit circleci", provider: "CircleCI", env: map[string]string{}, wantName: ProviderCircleCI},
		{name: "explicit manual", provider: "manual", wantName: ProviderManual},
		{name: "unknown provider", provider: "jenkins", wantErr: true},
		{name: "bad bool", provider: "auto", env: map[string]string{"GITHUB_ACTIONS": "maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Select(ctx, tt.provider, tt.manual, envconfig.MapLookuper(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got adapter %v", a)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select returned error: %v", err)
			}
			if a.Name() != tt.wantName {
				t.Fatalf("adapter = %s, want %s", a.Name(), tt.wantName)
			}
		})
	}
}

func TestSelect_NotDetectedIsNotApplicable(t *testing.T) {
	a, err := Select(context.Background(), ProviderAuto, Manual{}, envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if _, ok, err := a.ResolvePR(context.Background()); ok || err != nil {
		t.Fatalf("expected not applicable, got ok=%v err=%v", ok, err)
	}
}
