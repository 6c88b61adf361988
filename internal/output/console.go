package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"prcheck/internal/rules"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

// ConsoleSink renders a check run for a terminal or CI log. Text mode prints
// one line per rule and a closing summary; json prints a Report when closed;
// ndjson streams events as they arrive.
type ConsoleSink struct {
	mu     sync.Mutex
	w      io.Writer
	format string
	only   map[rules.Status]bool
	report Report
}

// NewConsoleSink returns a sink writing to w (stdout when nil). A non-empty
// filter limits rule lines to the listed statuses; the summary still counts
// every rule.
func NewConsoleSink(w io.Writer, format string, filter []string) (*ConsoleSink, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON, FormatNDJSON:
	default:
		return nil, fmt.Errorf("unsupported console format: %s", format)
	}

	s := &ConsoleSink{w: w, format: format}
	for _, st := range filter {
		if s.only == nil {
			s.only = make(map[rules.Status]bool)
		}
		s.only[rules.Status(strings.ToUpper(strings.TrimSpace(st)))] = true
	}
	return s, nil
}

func (s *ConsoleSink) Emit(e Event) error {
	if e.Result != nil && s.only != nil && !s.only[e.Result.Status] {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.format {
	case FormatJSON:
		s.report.add(e)
		return nil
	case FormatNDJSON:
		return writeLine(s.w, e)
	default:
		return s.writeText(e)
	}
}

func (s *ConsoleSink) writeText(e Event) error {
	var line string
	switch e.Type {
	case EventRuleResult:
		line = resultLine(*e.Result)
	case EventRunFinished:
		line = summaryLine(e)
	default:
		return nil
	}
	_, err := fmt.Fprintln(s.w, line)
	return err
}

func resultLine(r rules.Result) string {
	label := passLabel
	if !r.Passed() {
		label = failLabel
	}
	line := fmt.Sprintf("%s %s: %s", label.Sprintf("[%s]", r.Status), r.Target, r.RuleID)
	if r.Message != "" {
		line += " - " + r.Message
	}
	return line
}

// summaryLine renders run.finished, e.g.
// "acme/widgets#7: 2 passed, 1 failed; comment updated; exit 1".
func summaryLine(e Event) string {
	var t Totals
	if e.Totals != nil {
		t = *e.Totals
	}
	line := fmt.Sprintf("%s: %d passed, %d failed", e.Target, t.Passed, t.Failed)
	if e.Comment != "" {
		line += "; comment " + e.Comment
	}
	if e.ExitCode != nil {
		line += fmt.Sprintf("; exit %d", *e.ExitCode)
	}
	return line
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.format != FormatJSON {
		return nil
	}
	return writeReport(s.w, &s.report)
}
