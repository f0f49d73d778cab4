package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner prints a single-line progress indicator while a model call is in
// flight. It writes to stderr so generated code on stdout stays pipeable.
type Spinner struct {
	frames  []string
	delay   time.Duration
	message string
	out     io.Writer
	active  bool
	mu      sync.Mutex
	done    chan struct{}
	stopped chan struct{}
}

func New(message string) *Spinner {
	return NewWithWriter(message, os.Stderr)
}

func NewWithWriter(message string, out io.Writer) *Spinner {
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:   100 * time.Millisecond,
		message: message,
		out:     out,
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.loop(s.done, s.stopped)
}

func (s *Spinner) loop(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.mu.Lock()
		fmt.Fprintf(s.out, "\r%s %s", s.frames[i%len(s.frames)], s.message)
		s.mu.Unlock()

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the line. Safe to call repeatedly.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.done)
	stopped := s.stopped
	width := len(s.message) + 10
	s.mu.Unlock()

	<-stopped
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", width)+"\r")
}

func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}
