package output

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"prcheck/internal/rules"
)

// recorder keeps the event types and rule IDs it sees.
type recorder struct {
	seen     []string
	emitErr  error
	closeErr error
	closed   bool
}

func (r *recorder) Emit(e Event) error {
	entry := e.Type
	if e.Result != nil {
		entry += ":" + e.Result.RuleID
	}
	r.seen = append(r.seen, entry)
	return r.emitErr
}

func (r *recorder) Close() error {
	r.closed = true
	return r.closeErr
}

func TestManager_SendsRunToEverySink(t *testing.T) {
	console, file := &recorder{}, &recorder{}
	mgr, err := NewManager(console, file)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	out := failingOutcome()
	if err := mgr.Started(prTarget, len(out.Results)); err != nil {
		t.Fatalf("Started error: %v", err)
	}
	if err := mgr.Outcome(out); err != nil {
		t.Fatalf("Outcome error: %v", err)
	}
	if err := mgr.Outcome(nil); err != nil {
		t.Fatalf("Outcome(nil) error: %v", err)
	}
	if err := mgr.Finished(prTarget, out, "created", 1); err != nil {
		t.Fatalf("Finished error: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	want := []string{
		"run.started",
		"rule.result:title-format",
		"rule.result:assignee-set",
		"rule.result:labels-set",
		"run.finished",
	}
	for name, r := range map[string]*recorder{"console": console, "file": file} {
		if diff := cmp.Diff(want, r.seen); diff != "" {
			t.Errorf("%s events mismatch (-want +got):\n%s", name, diff)
		}
		if !r.closed {
			t.Errorf("%s sink not closed", name)
		}
	}
}

func TestNewManager_RejectsNilSink(t *testing.T) {
	if _, err := NewManager(&recorder{}, nil); err == nil {
		t.Fatal("expected error for nil sink")
	}
}

func TestManager_FailingSinkDoesNotStopOthers(t *testing.T) {
	broken := &recorder{emitErr: errors.New("disk full"), closeErr: errors.New("bad descriptor")}
	healthy := &recorder{}
	mgr, err := NewManager(broken, healthy)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	err = mgr.Outcome(&rules.Outcome{Results: []rules.Result{noAssignee()}})
	if err == nil || !strings.Contains(err.Error(), "disk full") || !strings.Contains(err.Error(), "rule.result") {
		t.Fatalf("Outcome error = %v, want disk full on rule.result", err)
	}
	if diff := cmp.Diff([]string{"rule.result:assignee-set"}, healthy.seen); diff != "" {
		t.Fatalf("healthy sink events mismatch (-want +got):\n%s", diff)
	}

	err = mgr.Close()
	if err == nil || !strings.Contains(err.Error(), "bad descriptor") {
		t.Fatalf("Close error = %v, want bad descriptor", err)
	}
	if !healthy.closed {
		t.Fatal("healthy sink must still be closed")
	}
}
