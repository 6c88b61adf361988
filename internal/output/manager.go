package output

import (
	"errors"
	"fmt"

	"prcheck/internal/rules"
)

// Sink consumes the events of one check run.
type Sink interface {
	Emit(e Event) error
	Close() error
}

// Manager sends each step of a check run to every sink. A failing sink does
// not stop the others; its error is reported alongside theirs.
type Manager struct {
	sinks []Sink
}

func NewManager(sinks ...Sink) (*Manager, error) {
	m := &Manager{}
	for i, s := range sinks {
		if s == nil {
			return nil, fmt.Errorf("output sink %d is nil", i)
		}
		m.sinks = append(m.sinks, s)
	}
	return m, nil
}

func (m *Manager) Started(target string, ruleCount int) error {
	return m.emit(RunStarted(target, ruleCount))
}

// Outcome emits one rule.result per result, in evaluation order.
func (m *Manager) Outcome(out *rules.Outcome) error {
	if out == nil {
		return nil
	}
	var errs []error
	for _, r := range out.Results {
		errs = append(errs, m.emit(ResultEvent(r)))
	}
	return errors.Join(errs...)
}

func (m *Manager) Finished(target string, out *rules.Outcome, comment string, exitCode int) error {
	return m.emit(RunFinished(target, out, comment, exitCode))
}

func (m *Manager) emit(e Event) error {
	var errs []error
	for i, s := range m.sinks {
		if err := s.Emit(e); err != nil {
			errs = append(errs, fmt.Errorf("sink %d (%T): %s: %w", i, s, e.Type, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) Close() error {
	var errs []error
	for i, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink %d (%T): %w", i, s, err))
		}
	}
	return errors.Join(errs...)
}
