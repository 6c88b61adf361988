package output

import (
	"encoding/json"
	"io"

	"prcheck/internal/rules"
)

// Report is the document written in json mode once the run is over. A run
// that stopped early has no exit code.
type Report struct {
	Target   string         `json:"target,omitempty"`
	Rules    int            `json:"rules"`
	Results  []rules.Result `json:"results"`
	Totals   Totals         `json:"totals"`
	Comment  string         `json:"comment,omitempty"`
	ExitCode *int           `json:"exit_code,omitempty"`
}

func (r *Report) add(e Event) {
	switch e.Type {
	case EventRunStarted:
		r.Target = e.Target
		r.Rules = e.Rules
	case EventRuleResult:
		if e.Result != nil {
			r.Results = append(r.Results, *e.Result)
		}
	case EventRunFinished:
		if r.Target == "" {
			r.Target = e.Target
		}
		if e.Totals != nil {
			r.Totals = *e.Totals
		}
		r.Comment = e.Comment
		r.ExitCode = e.ExitCode
	}
}

func writeReport(w io.Writer, r *Report) error {
	if r.Results == nil {
		r.Results = []rules.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeLine(w io.Writer, e Event) error {
	return json.NewEncoder(w).Encode(e)
}
