package pacman

import (
	"errors"
	"reflect"
	"testing"

	"github.com/communitybig/kernelctl/internal/runner"
)

type fakeCommander struct {
	requests []runner.Request
}

func (f *fakeCommander) Run(req runner.Request, sink runner.Sink) runner.Operation {
	f.requests = append(f.requests, req)
	sink.Complete(true)
	return runner.Completed(true)
}

type recordSink struct {
	lines       []string
	progress    []runner.ProgressEvent
	completions []bool
}

func (s *recordSink) Progress(fraction float64, status string) {
	s.progress = append(s.progress, runner.ProgressEvent{Fraction: fraction, Status: status})
}
func (s *recordSink) OutputLine(line string) { s.lines = append(s.lines, line) }
func (s *recordSink) Complete(success bool)  { s.completions = append(s.completions, success) }

// installedClient answers -Q name for exactly the given names.
func installedClient(names ...string) *Client {
	return &Client{run: func(args ...string) ([]byte, error) {
		if len(args) == 2 && args[0] == "-Q" {
			for _, n := range names {
				if n == args[1] {
					return []byte(n + " 1.0-1\n"), nil
				}
			}
			return nil, errors.New("exit status 1")
		}
		return nil, errors.New("unexpected query")
	}}
}

func TestPackageInstallArgv(t *testing.T) {
	cmd := &fakeCommander{}
	m := NewManager(installedClient(), cmd, "pkexec")

	sink := &recordSink{}
	op := m.Install("firefox", sink)
	if !op.Wait() {
		t.Fatal("Install operation reported failure")
	}

	if len(cmd.requests) != 1 {
		t.Fatalf("spawned %d commands, want 1", len(cmd.requests))
	}
	want := []string{"pkexec", "pacman", "-S", "--noconfirm", "firefox"}
	if !reflect.DeepEqual(cmd.requests[0].Argv, want) {
		t.Errorf("argv = %v, want %v", cmd.requests[0].Argv, want)
	}
	if len(sink.progress) == 0 || sink.progress[0].Fraction != 0.1 {
		t.Errorf("missing leading progress: %+v", sink.progress)
	}
}

func TestPackageInstallNoHeadersPairing(t *testing.T) {
	cmd := &fakeCommander{}
	m := NewManager(installedClient(), cmd, "pkexec")

	m.Install("firefox", &recordSink{})

	for _, arg := range cmd.requests[0].Argv {
		if arg == "firefox-headers" {
			t.Error("generic install paired a headers package")
		}
	}
}

func TestPackageRemoveArgv(t *testing.T) {
	cmd := &fakeCommander{}
	m := NewManager(installedClient("firefox"), cmd, "pkexec")

	sink := &recordSink{}
	m.Remove("firefox", sink)

	if len(cmd.requests) != 1 {
		t.Fatalf("spawned %d commands, want 1", len(cmd.requests))
	}
	want := []string{"pkexec", "pacman", "-R", "--noconfirm", "firefox"}
	if !reflect.DeepEqual(cmd.requests[0].Argv, want) {
		t.Errorf("argv = %v, want %v", cmd.requests[0].Argv, want)
	}
	if cmd.requests[0].TotalTargets != 1 {
		t.Errorf("TotalTargets = %d, want 1", cmd.requests[0].TotalTargets)
	}
}

func TestPackageRemoveAbsentIsNoOp(t *testing.T) {
	cmd := &fakeCommander{}
	m := NewManager(installedClient(), cmd, "pkexec")

	sink := &recordSink{}
	op := m.Remove("firefox", sink)

	if len(cmd.requests) != 0 {
		t.Fatalf("spawned %d commands, want 0", len(cmd.requests))
	}
	if !op.Wait() {
		t.Error("no-op removal reported failure")
	}
	if len(sink.completions) != 1 || !sink.completions[0] {
		t.Errorf("completions = %v, want exactly one true", sink.completions)
	}
	if len(sink.lines) != 1 || sink.lines[0] != "No packages to remove." {
		t.Errorf("lines = %v", sink.lines)
	}
}
