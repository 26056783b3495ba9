// Package progress shows a spinner on stderr while a CLI command waits on
// the remote API. Output goes to stderr to keep stdout clean for piping,
// and nothing is drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// interval is the redraw period.
const interval = 100 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner redraws "label... 12s" until stopped. Start and Stop may each be
// called once; Stop waits for the drawing goroutine to exit.
type Spinner struct {
	w        io.Writer
	label    string
	isTTY    bool
	interval time.Duration

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:        os.Stderr,
		label:    label,
		isTTY:    term.IsTerminal(int(os.Stderr.Fd())),
		interval: interval,
	}
}

// Start begins drawing in the background.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(time.Now())
}

func (s *Spinner) run(start time.Time) {
	defer close(s.done)
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for frame := 0; ; frame++ {
		elapsed := time.Since(start).Truncate(time.Second)
		fmt.Fprintf(s.w, "\r%s %s... %s", frames[frame%len(frames)], s.label, elapsed)
		select {
		case <-s.stop:
			// Clear the line
			fmt.Fprintf(s.w, "\r%40s\r", "")
			return
		case <-t.C:
		}
	}
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
