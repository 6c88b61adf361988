// Package report renders the pull request status comment.
//
// The comment is identified across runs by Marker at the start of its body;
// the hosting API has no upsert-by-key for comments, so the marker is the key.
package report

import (
	"fmt"
	"strings"

	"prcheck/internal/data"
	"prcheck/internal/rules"
)

// Marker tags the one status comment per pull request.
const Marker = "<!-- pr-check -->"

const emptyListing = "—"

// IsStatusComment reports whether body belongs to a status comment.
func IsStatusComment(body string) bool {
	return strings.HasPrefix(body, Marker)
}

// FindStatusComment returns the first status comment in API order. Later
// duplicates are ignored.
func FindStatusComment(comments []data.Comment) (data.Comment, bool) {
	for _, c := range comments {
		if IsStatusComment(c.Body) {
			return c, true
		}
	}
	return data.Comment{}, false
}

// Compose builds the full comment body: marker, newline, then a failure or
// success report.
func Compose(out *rules.Outcome, pr *data.PullRequestSnapshot) (string, error) {
	if out == nil || pr == nil {
		return "", fmt.Errorf("compose status comment: missing outcome or pull request")
	}
	var sb strings.Builder
	sb.WriteString(Marker)
	sb.WriteString("\n")
	var err error
	if out.Failed() {
		err = writeFailure(&sb, out)
	} else {
		err = writeSuccess(&sb, pr)
	}
	if err != nil {
		return "", fmt.Errorf("compose status comment: %w", err)
	}
	return sb.String(), nil
}

func writeFailure(sb *strings.Builder, out *rules.Outcome) error {
	sb.WriteString("## ❌ PR Health Check\n\n")
	sb.WriteString("The automated PR checks found one or more issues with this pull request.\n\n")

	rows := make([][]string, 0, len(out.Results))
	for _, r := range out.Results {
		rows = append(rows, []string{r.Title, statusMark(r.Passed())})
	}
	table, err := markdownTable([]string{"Check", "Status"}, rows)
	if err != nil {
		return err
	}
	sb.WriteString(table)
	sb.WriteString("\n### Details\n")
	for _, msg := range out.Violations() {
		sb.WriteString("- ")
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	sb.WriteString("\nOnce you have addressed the above items (e.g. updating the title, " +
		"adding an assignee or labels), this check will re-run automatically on the next PR update.")
	return nil
}

func writeSuccess(sb *strings.Builder, pr *data.PullRequestSnapshot) error {
	sb.WriteString("## ✅ PR Health Check Passed\n\n")
	sb.WriteString("All required PR hygiene checks have been satisfied.\n\n")

	table, err := markdownTable([]string{"Field", "Value"}, [][]string{
		{"Title", "`" + pr.Title + "`"},
		{"Assignees", listing(pr.AssigneeLogins())},
		{"Labels", listing(pr.LabelNames())},
	})
	if err != nil {
		return err
	}
	sb.WriteString(table)
	sb.WriteString("\nThank you for keeping the pull request metadata consistent and clear.")
	return nil
}

func statusMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func listing(items []string) string {
	if len(items) == 0 {
		return emptyListing
	}
	return strings.Join(items, ", ")
}
