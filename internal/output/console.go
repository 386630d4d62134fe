package output

import (
	"fmt"
	"io"

	"github.com/communitybig/kernelctl/internal/runner"
)

// Console drains a runner event channel and applies every update to the
// terminal. It is the single writer to its output: worker goroutines
// produce events, this dispatcher alone renders them, so bar redraws and
// transcript lines never interleave mid-line.
type Console struct {
	bar       *ProgressBar
	w         io.Writer
	showLines bool
}

// NewConsole builds a console dispatcher. When showLines is true the raw
// transcript is printed above the progress bar; otherwise only progress
// and the final message are shown.
func NewConsole(w io.Writer, showLines bool) *Console {
	bar := NewProgressBar()
	bar.SetWriter(w)
	return &Console{bar: bar, w: w, showLines: showLines}
}

// Drain consumes events until the terminal DoneEvent arrives and returns
// the operation's success. It must be called from exactly one goroutine.
func (c *Console) Drain(events <-chan runner.Event) bool {
	for ev := range events {
		switch ev := ev.(type) {
		case runner.LineEvent:
			if c.showLines {
				c.bar.ClearLine()
				fmt.Fprintln(c.w, ev.Text)
			}
		case runner.ProgressEvent:
			c.bar.Update(ev.Fraction, ev.Status)
		case runner.DoneEvent:
			if ev.Success {
				c.bar.Finish("Done.")
			} else {
				c.bar.Finish("Failed.")
			}
			return ev.Success
		}
	}
	// Channel closed without a DoneEvent; treat as failure.
	return false
}
