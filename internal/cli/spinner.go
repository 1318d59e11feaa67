package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress on stderr while inputs render. Without a terminal
// it draws nothing, so piped output and CI logs only get the status lines.
type Spinner struct {
	message string
	out     io.Writer
	animate bool
	ctx     context.Context

	mu       sync.Mutex // guards out and the channels
	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext returns a spinner that clears itself once ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	fd := os.Stderr.Fd()
	return &Spinner{
		message: message,
		out:     os.Stderr,
		animate: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		ctx:     ctx,
	}
}

// Start launches the animation. Later calls are no-ops.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.finished = make(chan struct{})
	go s.run(s.stop, s.finished)
}

func (s *Spinner) run(stop <-chan struct{}, finished chan<- struct{}) {
	defer close(finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-stop:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

// Stop ends the animation and blanks the line. It may be called before
// Start and any number of times.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, finished := s.stop, s.finished
	s.mu.Unlock()
	if stop == nil {
		return
	}
	s.once.Do(func() { close(stop) })
	<-finished
	s.clear()
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, as opposed to a
// regular Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) draw(frame string) {
	if !s.animate {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clear() {
	if !s.animate {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
