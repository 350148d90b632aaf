package display

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/vedantwpatil/Mouse-Distance/internal/units"
)

// StatusLine redraws a single terminal line with the distance traveled.
type StatusLine struct {
	description string
	unit        units.Unit
	out         io.Writer
	interval    time.Duration
	now         func() time.Time

	mu         sync.Mutex
	lastUpdate time.Time
	lastTotal  float64
	lastDelta  float64
	dirty      bool
	drawn      bool
}

func NewStatusLine(description string, unit units.Unit) *StatusLine {
	return NewStatusLineTo(os.Stdout, description, unit)
}

// NewStatusLineTo draws on out instead of stdout.
func NewStatusLineTo(out io.Writer, description string, unit units.Unit) *StatusLine {
	return &StatusLine{
		description: description,
		unit:        unit,
		out:         out,
		interval:    100 * time.Millisecond,
		now:         time.Now,
	}
}

// Report matches config.DistanceFunc. Redraws are limited to one per
// interval; the latest values are kept for Flush.
func (s *StatusLine) Report(total, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTotal = total
	s.lastDelta = delta
	s.dirty = true

	// Only update display if enough time has passed (to avoid too frequent updates)
	now := s.now()
	if now.Sub(s.lastUpdate) < s.interval {
		return nil
	}
	s.lastUpdate = now
	return s.draw()
}

// Redraw shows total and delta immediately, bypassing the throttle. Used
// after the total is reset from outside a pointer event.
func (s *StatusLine) Redraw(total, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTotal = total
	s.lastDelta = delta
	s.lastUpdate = s.now()
	return s.draw()
}

// Logf matches monitoring.Logf. It ends the status line before logging so
// the message gets a line of its own; the next Report redraws right away.
func (s *StatusLine) Logf(format string, v ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawn {
		fmt.Fprintln(s.out)
		s.drawn = false
	}
	s.lastUpdate = time.Time{}
	log.Printf(format, v...)
}

// Flush draws any values held back by throttling and ends the line.
func (s *StatusLine) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		if err := s.draw(); err != nil {
			return err
		}
	}
	s.drawn = false
	_, err := fmt.Fprintln(s.out)
	return err
}

func (s *StatusLine) draw() error {
	s.dirty = false
	s.drawn = true
	_, err := fmt.Fprintf(s.out, "\r%s %.2f %s (+%.2f)   ",
		s.description,
		s.lastTotal,
		s.unit,
		s.lastDelta,
	)
	return err
}
