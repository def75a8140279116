// Package spinner provides a terminal progress indicator for slow corpus
// fetch and ranking phases.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner animates a progress message on a terminal writer.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	message string
	active  bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	ctx     context.Context
}

// New creates a spinner writing to w. ctx cancellation stops the animation.
func New(ctx context.Context, w io.Writer, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:   100 * time.Millisecond,
		writer:  w,
		message: message,
		ctx:     spinCtx,
		cancel:  cancel,
	}
}

// Start begins the animation. Starting an active spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.done = make(chan struct{})
	go s.run()
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	done := s.done
	s.mu.Unlock()

	s.cancel()
	<-done

	// terminal gets a full line clear; redirected output just a carriage return
	if f, ok := s.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// IsActive reports whether the spinner is currently animating.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Spinner) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			glyph := s.frames[frame%len(s.frames)]
			message := s.message
			s.mu.Unlock()

			fmt.Fprintf(s.writer, "\r%s %s", glyph, message)
			frame++
		}
	}
}
