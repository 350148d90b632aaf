package tracking

import "context"

// Source delivers pointer positions. Run blocks until ctx is done or the
// source fails; returning from Run ends the subscription. onMove is called
// from a single goroutine, one position at a time.
type Source interface {
	Run(ctx context.Context, onMove func(Point)) error
}
