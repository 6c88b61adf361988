package output

import "prcheck/internal/rules"

// Output formats shared by the console and file sinks.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const (
	EventRunStarted  = "run.started"
	EventRuleResult  = "rule.result"
	EventRunFinished = "run.finished"
)

// Event is one step of a check run. Sinks receive every run as
// run.started, one rule.result per evaluated rule, then run.finished.
// NDJSON output is these events, one object per line.
type Event struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	*rules.Result
	Rules    int     `json:"rules,omitempty"`
	Totals   *Totals `json:"totals,omitempty"`
	Comment  string  `json:"comment,omitempty"` // "created", "updated" or "skipped"
	ExitCode *int    `json:"exit_code,omitempty"`
}

// Totals counts the outcome of a finished run across all evaluated rules,
// including any hidden by a console status filter.
type Totals struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

func RunStarted(target string, ruleCount int) Event {
	return Event{Type: EventRunStarted, Target: target, Rules: ruleCount}
}

func ResultEvent(r rules.Result) Event {
	return Event{Type: EventRuleResult, Target: r.Target, Result: &r}
}

func RunFinished(target string, out *rules.Outcome, comment string, exitCode int) Event {
	return Event{
		Type:     EventRunFinished,
		Target:   target,
		Totals:   totalsOf(out),
		Comment:  comment,
		ExitCode: &exitCode,
	}
}

func totalsOf(out *rules.Outcome) *Totals {
	t := &Totals{}
	if out == nil {
		return t
	}
	for _, r := range out.Results {
		if r.Passed() {
			t.Passed++
		} else {
			t.Failed++
		}
	}
	return t
}
