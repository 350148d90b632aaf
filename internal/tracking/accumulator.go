package tracking

// Change is emitted for every observed movement after the first.
type Change struct {
	TotalPx float64
	DeltaPx float64
}

// ChangeFunc receives accumulator changes. A returned error is handed back to
// whoever called Observe.
type ChangeFunc func(Change) error

// Accumulator turns a stream of pointer positions into distance deltas and a
// running total.
//
// The first observed position only sets the baseline: where the pointer sits
// when tracking starts says nothing about how far it moved, so no distance is
// attributed to it. The baseline is kept across Clear.
//
// Accumulator is not safe for concurrent use.
type Accumulator struct {
	lastPosition     Point
	hasSeenFirstMove bool
	totalPx          float64
	onChange         ChangeFunc
}

// NewAccumulator returns an accumulator whose total starts at seedPx, e.g. a
// total restored from storage. onChange may be nil.
func NewAccumulator(seedPx float64, onChange ChangeFunc) *Accumulator {
	return &Accumulator{
		totalPx:  seedPx,
		onChange: onChange,
	}
}

// Observe records a new pointer position.
func (a *Accumulator) Observe(p Point) error {
	if !a.hasSeenFirstMove {
		a.lastPosition = p
		a.hasSeenFirstMove = true
		return nil
	}

	delta := Distance(a.lastPosition, p)
	a.lastPosition = p
	a.totalPx += delta

	if a.onChange == nil {
		return nil
	}
	// Zero deltas are reported too; filtering is up to the listener.
	return a.onChange(Change{TotalPx: a.totalPx, DeltaPx: delta})
}

// Clear resets the total. The baseline position stays, so the next Observe
// reports a real delta.
func (a *Accumulator) Clear() {
	a.totalPx = 0
}

// TotalPx returns the accumulated distance in pixels.
func (a *Accumulator) TotalPx() float64 {
	return a.totalPx
}

// HasBaseline reports whether the first position has been observed.
func (a *Accumulator) HasBaseline() bool {
	return a.hasSeenFirstMove
}
