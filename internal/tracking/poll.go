package tracking

import (
	"context"
	"time"

	"github.com/go-vgo/robotgo"
)

// DefaultPollInterval samples the cursor roughly once per 60Hz frame.
const DefaultPollInterval = 16 * time.Millisecond

// LocateFunc returns the current cursor position in screen coordinates.
type LocateFunc func() (x, y int)

// PollSource samples the cursor position at a fixed interval. It is the
// fallback for hosts where the global hook is unavailable (e.g. Wayland).
type PollSource struct {
	Interval time.Duration
	Locate   LocateFunc
}

// NewPollSource returns a poller backed by robotgo.Location.
func NewPollSource(interval time.Duration) *PollSource {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollSource{
		Interval: interval,
		Locate:   robotgo.Location,
	}
}

// Run reports the cursor position whenever it differs from the previous
// sample. The first sample is always reported.
func (s *PollSource) Run(ctx context.Context, onMove func(Point)) error {
	locate := s.Locate
	if locate == nil {
		locate = robotgo.Location
	}
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastX, lastY int
	first := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			x, y := locate()
			if !first && x == lastX && y == lastY {
				continue
			}
			first = false
			lastX, lastY = x, y
			onMove(NewPointFromScreen(x, y))
		}
	}
}
