package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames fill a shelf one spine at a time.
var spinnerFrames = []string{"▏   ", "▏▎  ", "▏▎▍ ", "▏▎▍▌", " ▎▍▌", "  ▍▌", "   ▌", "    "}

const spinnerInterval = 90 * time.Millisecond

// Spinner animates a status line on stderr until stopped or until its
// context is done.
type Spinner struct {
	w       io.Writer
	message string

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	stopOnce sync.Once
	stopped  chan struct{}
	started  bool
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext returns a spinner that stops by itself when ctx is done.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	if ctx == nil {
		ctx = context.Background()
	}
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start runs the animation in the background. Calling it twice does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.clear()
	})
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := len(spinnerFrames[0]) + 1 + len(s.message)
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}

// StopWithSuccess stops the spinner and prints message as a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended, either through
// Stop or through the parent context.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
