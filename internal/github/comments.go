package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v81/github"

	"prcheck/internal/data"
)

// ListComments returns every issue comment on the pull request in API order,
// following pagination to the last page.
func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) ([]data.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []data.Comment
	for {
		page, resp, err := c.Client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list comments %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}
		for _, ic := range page {
			if ic == nil {
				continue
			}
			out = append(out, data.Comment{ID: ic.GetID(), Body: ic.GetBody()})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// CreateComment posts a new issue comment and returns its ID.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error) {
	ic, _, err := c.Client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return 0, fmt.Errorf("create comment %s/%s#%d: %w", owner, repo, number, err)
	}
	return ic.GetID(), nil
}

// EditComment replaces the body of an existing issue comment.
func (c *Client) EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := c.Client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("edit comment %d in %s/%s: %w", commentID, owner, repo, err)
	}
	return nil
}
