// Package runner executes privileged pacman mutations and infers a
// best-effort progress estimate from their streamed output.
//
// One Run produces an ordered event stream: zero or more OutputLine and
// Progress events, then exactly one Complete. An output line is always
// delivered before any progress update it triggered, so a consumer that
// renders a transcript can show the line that justified a progress jump.
package runner

// Sink receives the event stream of a single operation. Implementations
// must tolerate being called from a worker goroutine; calls for one
// operation are never concurrent with each other.
type Sink interface {
	// Progress reports an estimated completion fraction in [0, 1].
	// An empty status means "no new status text" (periodic re-emission).
	Progress(fraction float64, status string)

	// OutputLine forwards one raw line of merged stdout/stderr output.
	OutputLine(line string)

	// Complete is called exactly once, after every other event, with
	// success reflecting the child's exit code.
	Complete(success bool)
}

// Operation is a handle on an in-flight command.
type Operation interface {
	// Cancel requests best-effort termination of the child process.
	// It does not roll back a partial package transaction.
	Cancel()

	// Wait blocks until the operation finishes and returns its success.
	Wait() bool
}

// Commander abstracts Run so facades can be tested against a scripted
// implementation instead of a real subprocess.
type Commander interface {
	Run(req Request, sink Sink) Operation
}

// completedOperation is an Operation that finished before any process
// was spawned (idempotent no-ops, synchronous validation failures).
type completedOperation bool

func (completedOperation) Cancel()      {}
func (c completedOperation) Wait() bool { return bool(c) }

// Completed returns an already-finished Operation with the given result.
// The caller is responsible for having delivered the matching Complete
// event to its sink.
func Completed(success bool) Operation {
	return completedOperation(success)
}

// Event is the channel representation of a sink callback, for consumers
// that prefer draining a channel from a single dispatcher goroutine.
type Event interface {
	event()
}

// ProgressEvent mirrors Sink.Progress.
type ProgressEvent struct {
	Fraction float64
	Status   string
}

// LineEvent mirrors Sink.OutputLine.
type LineEvent struct {
	Text string
}

// DoneEvent mirrors Sink.Complete.
type DoneEvent struct {
	Success bool
}

func (ProgressEvent) event() {}
func (LineEvent) event()     {}
func (DoneEvent) event()     {}

// ChannelSink adapts a Sink to an event channel. Sends block, which
// preserves event ordering; the consumer must drain until DoneEvent.
type ChannelSink struct {
	Ch chan<- Event
}

// Progress implements Sink.
func (s ChannelSink) Progress(fraction float64, status string) {
	s.Ch <- ProgressEvent{Fraction: fraction, Status: status}
}

// OutputLine implements Sink.
func (s ChannelSink) OutputLine(line string) {
	s.Ch <- LineEvent{Text: line}
}

// Complete implements Sink.
func (s ChannelSink) Complete(success bool) {
	s.Ch <- DoneEvent{Success: success}
}
