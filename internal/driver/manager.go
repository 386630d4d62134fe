package driver

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/communitybig/kernelctl/internal/pacman"
	"github.com/communitybig/kernelctl/internal/runner"
)

// Progress bands for the two phases of a driver switch. The consumer
// sees one continuous sequence across both subprocess invocations.
const (
	removePhaseEnd = 0.40
)

// Registry is the read-only package query surface the manager needs.
// *pacman.Client satisfies it.
type Registry interface {
	ListInstalled() ([]pacman.Record, error)
	IsInstalled(name string) bool
}

// Manager switches between Mesa driver variants.
type Manager struct {
	reg          Registry
	cmd          runner.Commander
	privilegeCmd string
	drivers      []Driver
	log          *logrus.Logger
}

// NewManager builds a driver manager over the built-in catalog.
func NewManager(reg Registry, cmd runner.Commander, privilegeCmd string) *Manager {
	return &Manager{
		reg:          reg,
		cmd:          cmd,
		privilegeCmd: privilegeCmd,
		drivers:      Catalog(),
		log:          logrus.StandardLogger(),
	}
}

// Drivers returns the catalog.
func (m *Manager) Drivers() []Driver {
	out := make([]Driver, len(m.drivers))
	copy(out, m.drivers)
	return out
}

// Find returns the catalog entry for id.
func (m *Manager) Find(id string) (Driver, bool) {
	for _, d := range m.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// Active derives which variant is currently installed by checking each
// variant's packages against the installed set. Defaults to "stable"
// when nothing matches.
func (m *Manager) Active() string {
	records, err := m.reg.ListInstalled()
	if err != nil {
		m.log.WithError(err).Warn("could not determine installed packages")
		return "stable"
	}
	installed := make(map[string]bool, len(records))
	for _, rec := range records {
		installed[rec.Name] = true
	}
	for _, d := range m.drivers {
		for _, pkg := range d.Packages {
			if installed[pkg] {
				return d.ID
			}
		}
	}
	return "stable"
}

// Apply switches to the given driver variant. Phase one removes whichever
// of the variant's conflicts are installed; phase two installs the
// variant's packages. A failed removal aborts the switch without
// attempting installation. An unknown id completes false immediately
// without spawning anything.
func (m *Manager) Apply(id string, sink runner.Sink) runner.Operation {
	d, ok := m.Find(id)
	if !ok {
		m.log.WithField("driver", id).Warn("unknown driver variant requested")
		sink.Complete(false)
		return runner.Completed(false)
	}

	op := &phasedOperation{done: make(chan struct{})}
	go m.apply(d, sink, op)
	return op
}

func (m *Manager) apply(d Driver, sink runner.Sink, op *phasedOperation) {
	sink.Progress(0.1, fmt.Sprintf("Applying %s driver...", d.Name))

	var conflicts []string
	for _, pkg := range d.Conflicts {
		if m.reg.IsInstalled(pkg) {
			conflicts = append(conflicts, pkg)
		}
	}

	if len(conflicts) > 0 {
		sink.Progress(0.2, "Removing conflicting packages...")

		argv := append([]string{m.privilegeCmd, "pacman", "-R", "--noconfirm"}, conflicts...)
		phase := m.cmd.Run(
			runner.Request{Argv: argv, TotalTargets: len(conflicts)},
			bandSink{next: sink, lo: 0, hi: removePhaseEnd},
		)
		op.setCurrent(phase)
		if !phase.Wait() {
			sink.Progress(0.0, "Failed to remove conflicting packages.")
			sink.Complete(false)
			op.finish(false)
			return
		}
	}

	if op.isCanceled() {
		sink.Complete(false)
		op.finish(false)
		return
	}

	sink.Progress(removePhaseEnd, fmt.Sprintf("Installing %s packages...", d.Name))

	argv := append([]string{m.privilegeCmd, "pacman", "-S", "--noconfirm"}, d.Packages...)
	phase := m.cmd.Run(
		runner.Request{Argv: argv},
		bandSink{next: sink, lo: removePhaseEnd, hi: 1.0},
	)
	op.setCurrent(phase)
	success := phase.Wait()

	if success {
		sink.Progress(1.0, "Driver applied successfully!")
	} else {
		sink.Progress(0.0, "Failed to install packages.")
	}
	sink.Complete(success)
	op.finish(success)
}

// bandSink rescales a phase's [0,1] progress into a sub-band of the
// overall operation and swallows the phase's Complete; the facade emits
// the single real one.
type bandSink struct {
	next   runner.Sink
	lo, hi float64
}

func (b bandSink) Progress(fraction float64, status string) {
	b.next.Progress(b.lo+fraction*(b.hi-b.lo), status)
}

func (b bandSink) OutputLine(line string) {
	b.next.OutputLine(line)
}

func (b bandSink) Complete(bool) {}

// phasedOperation is the Operation handed to the caller while the two
// phases run sequentially on a worker goroutine.
type phasedOperation struct {
	mu       sync.Mutex
	current  runner.Operation
	canceled bool

	success    bool
	finishOnce sync.Once
	done       chan struct{}
}

func (p *phasedOperation) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canceled = true
	if p.current != nil {
		p.current.Cancel()
	}
}

func (p *phasedOperation) Wait() bool {
	<-p.done
	return p.success
}

func (p *phasedOperation) setCurrent(op runner.Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = op
	if p.canceled {
		op.Cancel()
	}
}

func (p *phasedOperation) isCanceled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canceled
}

func (p *phasedOperation) finish(success bool) {
	p.finishOnce.Do(func() {
		p.success = success
		close(p.done)
	})
}
