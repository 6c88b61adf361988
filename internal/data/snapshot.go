package data

import "fmt"

// PullRequestSnapshot is the read-only view of a pull request at check time.
// It is fetched fresh on every run and never persisted.
type PullRequestSnapshot struct {
	Owner     string    `json:"owner"`
	Repo      string    `json:"repo"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Assignees []Account `json:"assignees"`
	Labels    []Label   `json:"labels"`
}

// Account is the display identity of an assignee.
type Account struct {
	Login string `json:"login"`
}

// Label is a label applied to a pull request.
type Label struct {
	Name string `json:"name"`
}

// Comment is an issue comment on a pull request.
type Comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

// Ref formats the snapshot as OWNER/REPO#NUMBER.
func (s *PullRequestSnapshot) Ref() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s#%d", s.Owner, s.Repo, s.Number)
}

// AssigneeLogins returns the assignee logins in API order.
func (s *PullRequestSnapshot) AssigneeLogins() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Assignees))
	for _, a := range s.Assignees {
		out = append(out, a.Login)
	}
	return out
}

// LabelNames returns the label names in API order.
func (s *PullRequestSnapshot) LabelNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Labels))
	for _, l := range s.Labels {
		out = append(out, l.Name)
	}
	return out
}
