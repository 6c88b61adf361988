package github

import (
	"context"
	"fmt"

	"prcheck/internal/data"
)

// GetPullRequest fetches a pull request and projects it onto a snapshot.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*data.PullRequestSnapshot, error) {
	pr, _, err := c.Client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("get pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	snap := &data.PullRequestSnapshot{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Title:  pr.GetTitle(),
	}
	for _, a := range pr.Assignees {
		if a == nil {
			continue
		}
		snap.Assignees = append(snap.Assignees, data.Account{Login: a.GetLogin()})
	}
	for _, l := range pr.Labels {
		if l == nil {
			continue
		}
		snap.Labels = append(snap.Labels, data.Label{Name: l.GetName()})
	}
	return snap, nil
}
