package data

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPullRequestSnapshot_Ref(t *testing.T) {
	s := &PullRequestSnapshot{Owner: "acme", Repo: "api", Number: 42}
	if got := s.Ref(); got != "acme/api#42" {
		t.Fatalf("Ref() = %q, want %q", got, "acme/api#42")
	}

	var nilSnap *PullRequestSnapshot
	if got := nilSnap.Ref(); got != "" {
		t.Fatalf("nil Ref() = %q, want empty", got)
	}
}

func TestPullRequestSnapshot_Listings(t *testing.T) {
	s := &PullRequestSnapshot{
		Assignees: []Account{{Login: "octocat"}, {Login: "hubot"}},
		Labels:    []Label{{Name: "bug"}, {Name: "area/api"}},
	}

	if diff := cmp.Diff([]string{"octocat", "hubot"}, s.AssigneeLogins()); diff != "" {
		t.Errorf("AssigneeLogins() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bug", "area/api"}, s.LabelNames()); diff != "" {
		t.Errorf("LabelNames() mismatch (-want +got):\n%s", diff)
	}

	empty := &PullRequestSnapshot{}
	if got := empty.AssigneeLogins(); len(got) != 0 {
		t.Errorf("expected no logins, got %v", got)
	}
}
