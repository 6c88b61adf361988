package rules

import "prcheck/internal/data"

func NewResult(pr *data.PullRequestSnapshot, rule Rule, status Status, message string) Result {
	res := Result{
		Status: status,
		Target: pr.Ref(),
		RuleID: rule.ID(),
		Title:  rule.Title(),
	}
	if message != "" {
		res.Message = message
	}
	return res
}

func PassResult(pr *data.PullRequestSnapshot, rule Rule) Result {
	return NewResult(pr, rule, StatusPass, "")
}

func FailResult(pr *data.PullRequestSnapshot, rule Rule, message string) Result {
	return NewResult(pr, rule, StatusFail, message)
}
