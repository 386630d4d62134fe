package runner

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// keepAliveInterval is how often the current fraction is re-emitted
	// even without new output, so a redrawing consumer never stalls.
	keepAliveInterval = 500 * time.Millisecond

	// stallTimeout is how long the output stream may stay silent before
	// a synthetic reassurance line is forwarded.
	stallTimeout = 5 * time.Second
)

// Request describes one privileged package-manager mutation. Argv is
// executed verbatim; Argv[0] is expected to be the privilege helper
// (pkexec) followed by pacman and its arguments. TotalTargets, when
// non-zero, tells the progress tracker how many packages a removal
// touches so it can report per-package progress.
type Request struct {
	Argv         []string
	TotalTargets int
}

// Runner spawns pacman mutations and streams inferred progress to a Sink.
// The zero value is not usable; call New.
type Runner struct {
	log *logrus.Logger
}

// New returns a Runner logging through the standard logrus logger.
func New() *Runner {
	return &Runner{log: logrus.StandardLogger()}
}

// Handle tracks one spawned operation. It implements Operation.
type Handle struct {
	mu       sync.Mutex
	proc     *os.Process
	canceled bool

	success  bool
	exitCode int

	finishOnce sync.Once
	done       chan struct{}
}

// Cancel requests best-effort termination of the child. Safe to call at
// any time, including before the process has spawned.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canceled = true
	if h.proc != nil {
		_ = h.proc.Kill()
	}
}

// Wait blocks until the operation has delivered its Complete event and
// returns the final success flag.
func (h *Handle) Wait() bool {
	<-h.done
	return h.success
}

// ExitCode returns the child's exit code, valid once Wait has returned.
// It is -1 when the process never spawned or was killed by a signal.
func (h *Handle) ExitCode() int {
	<-h.done
	return h.exitCode
}

func (h *Handle) setProcess(p *os.Process) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.proc = p
	if h.canceled {
		_ = p.Kill()
	}
}

func (h *Handle) finish(success bool, exitCode int) {
	h.finishOnce.Do(func() {
		h.success = success
		h.exitCode = exitCode
		close(h.done)
	})
}

// Run spawns the requested command and returns immediately. All outcomes,
// including spawn failures, are reported through the sink; exactly one
// Complete is delivered per call. The returned handle allows cancellation
// and synchronous waiting.
func (r *Runner) Run(req Request, sink Sink) Operation {
	h := &Handle{done: make(chan struct{})}
	go r.execute(req, sink, h)
	return h
}

func (r *Runner) execute(req Request, sink Sink, h *Handle) {
	em := &emitter{
		sink:       sink,
		tracker:    newTracker(req.TotalTargets),
		log:        r.log,
		lastLineAt: time.Now(),
	}

	// Worker boundary: nothing may escape and crash the host process.
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("panic", p).Error("operation worker panicked")
			em.fail(fmt.Sprintf("Error: %v", p))
			h.finish(false, -1)
		}
	}()

	if len(req.Argv) == 0 {
		em.fail("Error: empty command")
		h.finish(false, -1)
		return
	}

	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	// LANG=C keeps pacman's wording stable; the Portuguese triggers stay
	// in the table for output produced before the environment applies
	// (pkexec prompts) and for callers that drop the override.
	cmd.Env = append(os.Environ(), "LANG=C")

	// Merge stdout and stderr into one ordered stream.
	pr, pw, err := os.Pipe()
	if err != nil {
		em.fail(fmt.Sprintf("Error: %v", err))
		h.finish(false, -1)
		return
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		r.log.WithError(err).Warn("failed to spawn package manager process")
		em.fail(fmt.Sprintf("Error: %v", err))
		h.finish(false, -1)
		return
	}
	pw.Close()
	h.setProcess(cmd.Process)
	r.log.WithField("argv", strings.Join(req.Argv, " ")).Debug("spawned package manager process")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				em.keepAlive()
			case <-stop:
				return
			}
		}
	}()

	sc := bufio.NewScanner(pr)
	// pacman can emit very long lines (file conflict listings); give the
	// scanner room before it gives up on one.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		em.line(line)
	}
	if err := sc.Err(); err != nil {
		r.log.WithError(err).Warn("output stream read failed")
	}
	pr.Close()

	err = cmd.Wait()
	close(stop)
	wg.Wait()

	exitCode := 0
	if err != nil {
		exitCode = -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
	}
	success := err == nil
	if success {
		em.finish(true, 1.0, "Operation complete!")
	} else {
		r.log.WithField("exit_code", exitCode).Debug("package manager process failed")
		em.finish(false, 0.0, "Operation failed.")
	}
	h.finish(success, exitCode)
}

// emitter serializes all sink calls for one operation and enforces the
// ordering contract: lines before the progress they trigger, Complete
// strictly last and exactly once.
type emitter struct {
	mu         sync.Mutex
	sink       Sink
	tracker    *tracker
	log        *logrus.Logger
	lastLineAt time.Time
	finished   bool
}

func (e *emitter) line(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.sink.OutputLine(text)
	e.lastLineAt = time.Now()

	// "error:" lines are forwarded verbatim and logged, but they never
	// decide the outcome; only the exit code does.
	if strings.Contains(strings.ToLower(text), "error:") {
		e.log.WithField("line", text).Warn("package manager reported an error")
	}

	if u, ok := e.tracker.observe(text); ok {
		e.sink.Progress(clamp(u.fraction), u.status)
	}
}

func (e *emitter) keepAlive() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.sink.Progress(e.tracker.fraction(), "")
	if time.Since(e.lastLineAt) > stallTimeout {
		e.sink.OutputLine(fmt.Sprintf("Still working... (%.0f%% complete)", e.tracker.fraction()*100))
		e.lastLineAt = time.Now()
	}
}

func (e *emitter) fail(status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.finished = true
	e.sink.Progress(0.0, status)
	e.sink.Complete(false)
}

func (e *emitter) finish(success bool, fraction float64, status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.finished = true
	e.sink.Progress(fraction, status)
	e.sink.Complete(success)
}
