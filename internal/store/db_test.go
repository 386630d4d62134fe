package store

import (
	"reflect"
	"testing"

	"github.com/communitybig/kernelctl/internal/runner"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	return s
}

func TestOperationLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.BeginOperation("install", "pkexec pacman -S --noconfirm linux61 linux61-headers")
	if err != nil {
		t.Fatalf("BeginOperation() error = %v", err)
	}

	ops, err := s.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d operations, want 1", len(ops))
	}
	if ops[0].Finished {
		t.Error("unfinished operation reported finished")
	}

	if err := s.FinishOperation(id, true); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}

	ops, _ = s.ListOperations(10)
	if !ops[0].Finished || !ops[0].Success {
		t.Errorf("operation = %+v, want finished and successful", ops[0])
	}
	if ops[0].Kind != "install" {
		t.Errorf("Kind = %q, want install", ops[0].Kind)
	}
}

func TestListOperationsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.BeginOperation("install", "a")
	second, _ := s.BeginOperation("remove", "b")

	ops, err := s.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 2 || ops[0].ID != second || ops[1].ID != first {
		t.Errorf("ordering = %+v, want newest first", ops)
	}

	ops, _ = s.ListOperations(1)
	if len(ops) != 1 || ops[0].ID != second {
		t.Errorf("limited listing = %+v", ops)
	}
}

func TestTranscript(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.BeginOperation("update", "pkexec pacman -Syu --noconfirm")

	lines := []string{
		"Synchronizing package databases...",
		"Installing",
		"error: failed to commit transaction",
	}
	for i, line := range lines {
		if err := s.AppendLine(id, i+1, line); err != nil {
			t.Fatalf("AppendLine() error = %v", err)
		}
	}

	got, err := s.Transcript(id)
	if err != nil {
		t.Fatalf("Transcript() error = %v", err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("Transcript() = %v, want %v", got, lines)
	}
}

func TestTranscriptRequiresOperationRow(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendLine(999, 1, "orphan"); err == nil {
		t.Error("AppendLine with unknown operation id succeeded, want foreign key error")
	}
}

type nopSink struct {
	lines       []string
	completions []bool
}

func (n *nopSink) Progress(float64, string) {}
func (n *nopSink) OutputLine(line string)   { n.lines = append(n.lines, line) }
func (n *nopSink) Complete(success bool)    { n.completions = append(n.completions, success) }

var _ runner.Sink = (*nopSink)(nil)

func TestRecordingSinkTees(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.BeginOperation("remove", "pkexec pacman -R --noconfirm linux61")

	next := &nopSink{}
	rec := NewRecordingSink(s, id, next)

	rec.OutputLine("removing linux61...")
	rec.OutputLine("Transaction complete.")
	rec.Progress(0.5, "Removing packages (1/1)...")
	rec.Complete(false)

	if !reflect.DeepEqual(next.lines, []string{"removing linux61...", "Transaction complete."}) {
		t.Errorf("forwarded lines = %v", next.lines)
	}
	if !reflect.DeepEqual(next.completions, []bool{false}) {
		t.Errorf("forwarded completions = %v", next.completions)
	}

	transcript, _ := s.Transcript(id)
	if !reflect.DeepEqual(transcript, next.lines) {
		t.Errorf("stored transcript = %v, want %v", transcript, next.lines)
	}
	ops, _ := s.ListOperations(1)
	if !ops[0].Finished || ops[0].Success {
		t.Errorf("operation = %+v, want finished and failed", ops[0])
	}
}
