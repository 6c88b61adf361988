package rules

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

type Result struct {
	RuleID string `json:"rule_id"`
	// Title is the human-readable rule title, used as the row label in reports.
	Title   string `json:"title"`
	Target  string `json:"target"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Passed reports whether the result is a pass.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}
