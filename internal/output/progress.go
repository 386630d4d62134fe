// Package output provides terminal output for kernelctl: a
// fraction-driven progress bar, tables for kernels, drivers and history,
// and the console dispatcher that owns all writes to the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar displays a fraction-driven progress bar with a status line.
// Example: [=========>          ]  45% Downloading packages (2/4)...
type ProgressBar struct {
	fraction  float64
	status    string
	width     int
	lastWidth int // rune width of the most recent TTY render
	mu        sync.Mutex
	writer    io.Writer
}

// NewProgressBar creates a progress bar writing to os.Stdout.
func NewProgressBar() *ProgressBar {
	return &ProgressBar{
		width:  40,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// Update moves the bar to fraction and, when status is non-empty,
// replaces the status text. Fractions outside [0,1] are clamped.
func (p *ProgressBar) Update(fraction float64, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.fraction = fraction
	if status != "" {
		p.status = status
	}
	p.render()
}

// Finish completes the bar with a final message and a newline.
func (p *ProgressBar) Finish(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = message
	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
	} else {
		fmt.Fprintln(p.writer, message)
	}
}

// ClearLine erases whatever the bar last drew, returning the cursor to
// column zero so a transcript line can print cleanly over it. No-op when
// nothing has been drawn or the output is piped.
func (p *ProgressBar) ClearLine() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastWidth == 0 || !writerIsTTY(p.writer) {
		return
	}
	fmt.Fprintf(p.writer, "\r%*s\r", p.lastWidth, "")
	p.lastWidth = 0
}

// line builds the full bar line for the current state.
func (p *ProgressBar) line() string {
	filled := int(p.fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteString("=")
		case i == filled-1:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")

	// Pad the status so a shorter text fully overwrites a longer one.
	return fmt.Sprintf("%s %3.0f%% %-50s", bar.String(), p.fraction*100, p.status)
}

// render draws the bar (must be called with lock held). On a non-TTY
// writer nothing is drawn; status changes are reported through Finish
// and the transcript instead, keeping piped output clean.
func (p *ProgressBar) render() {
	if !writerIsTTY(p.writer) {
		return
	}
	line := p.line()
	p.lastWidth = len([]rune(line))
	fmt.Fprintf(p.writer, "\r%s", line)
}
