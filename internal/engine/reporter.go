package engine

import (
	"context"

	"github.com/chainguard-dev/clog"

	"prcheck/internal/cicontext"
	"prcheck/internal/report"
)

// CommentAction records what happened to the status comment.
type CommentAction string

const (
	CommentCreated CommentAction = "created"
	CommentUpdated CommentAction = "updated"
	CommentSkipped CommentAction = "skipped"
)

// UpsertStatusComment edits the first existing status comment on the pull
// request, or creates one when none exists. The full comment list is read
// before deciding so reruns never add a second status comment.
func UpsertStatusComment(ctx context.Context, client Client, t cicontext.Target, body string) (CommentAction, int64, error) {
	log := clog.FromContext(ctx)

	comments, err := client.ListComments(ctx, t.Owner, t.Repo, t.Number)
	if err != nil {
		return "", 0, &APIError{Op: "list comments", Err: err}
	}

	if existing, ok := report.FindStatusComment(comments); ok {
		if err := client.EditComment(ctx, t.Owner, t.Repo, existing.ID, body); err != nil {
			return "", 0, &APIError{Op: "update comment", Err: err}
		}
		log.Infof("Updated PR comment (id=%d)", existing.ID)
		return CommentUpdated, existing.ID, nil
	}

	id, err := client.CreateComment(ctx, t.Owner, t.Repo, t.Number, body)
	if err != nil {
		return "", 0, &APIError{Op: "create comment", Err: err}
	}
	log.Infof("Created PR comment (id=%d)", id)
	return CommentCreated, id, nil
}
