package checks

import (
	"context"
	"strings"
	"testing"

	"prcheck/internal/data"
	"prcheck/internal/rules"
)

func TestLabelsSetRule_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		opts           map[string]string
		pr             *data.PullRequestSnapshot
		expectedStatus rules.Status
	}{
		{
			name:           "Pass - One Label",
			pr:             &data.PullRequestSnapshot{Labels: []data.Label{{Name: "bug"}}},
			expectedStatus: rules.StatusPass,
		},
		{
			name: "Fail - No Labels",
			pr: &data.PullRequestSnapshot{
				Title:     "feat: ok",
				Assignees: []data.Account{{Login: "octocat"}},
			},
			expectedStatus: rules.StatusFail,
		},
		{
			name:           "Pass - Meets Configured Minimum",
			opts:           map[string]string{"min": "2"},
			pr:             &data.PullRequestSnapshot{Labels: []data.Label{{Name: "bug"}, {Name: "api"}}},
			expectedStatus: rules.StatusPass,
		},
		{
			name:           "Fail - Below Configured Minimum",
			opts:           map[string]string{"min": "3"},
			pr:             &data.PullRequestSnapshot{Labels: []data.Label{{Name: "bug"}}},
			expectedStatus: rules.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &LabelsSetRule{}
			if err := rule.Configure(tt.opts); err != nil {
				t.Fatalf("Configure failed: %v", err)
			}
			result, err := rule.Evaluate(context.Background(), tt.pr)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if result.Status != tt.expectedStatus {
				t.Fatalf("expected status %v, got %v", tt.expectedStatus, result.Status)
			}
			if tt.expectedStatus == rules.StatusFail && !strings.Contains(result.Message, "label") {
				t.Fatalf("unexpected message: %q", result.Message)
			}
		})
	}
}
