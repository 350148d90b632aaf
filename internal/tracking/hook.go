package tracking

import (
	"context"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Mouse-Distance/internal/monitoring"
)

// HookSource reads pointer movement from the global OS input hook.
//
// The hook is process wide, so only one HookSource may run at a time.
type HookSource struct {
	mu      sync.Mutex
	running bool
}

func NewHookSource() *HookSource {
	return &HookSource{}
}

// Run registers for move and drag events and blocks until ctx is cancelled.
func (s *HookSource) Run(ctx context.Context, onMove func(Point)) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errHookRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	handle := func(e hook.Event) {
		onMove(NewPointFromHook(e.X, e.Y))
	}
	// Dragging moves the pointer as well
	hook.Register(hook.MouseMove, []string{}, handle)
	hook.Register(hook.MouseDrag, []string{}, handle)

	evChan := hook.Start()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			hook.End()
		case <-stopped:
		}
	}()

	monitoring.Logf("Hook process started. Waiting for pointer events...")
	// Blocks until hook.End() is called.
	<-hook.Process(evChan)
	monitoring.Logf("Hook process stopped.")

	return ctx.Err()
}
