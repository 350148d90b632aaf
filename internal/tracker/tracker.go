// Package tracker ties the motion accumulator to configuration, persistence
// and a pointer source.
package tracker

import (
	"context"
	"math"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vedantwpatil/Mouse-Distance/internal/config"
	"github.com/vedantwpatil/Mouse-Distance/internal/monitoring"
	"github.com/vedantwpatil/Mouse-Distance/internal/storage"
	"github.com/vedantwpatil/Mouse-Distance/internal/tracking"
	"github.com/vedantwpatil/Mouse-Distance/internal/units"
)

// DistanceKey is the store key (before namespacing) holding the total in pixels.
const DistanceKey = "distanceTraveled"

// Tracker measures how far the pointer has traveled. It is safe for
// concurrent use.
type Tracker struct {
	id    uuid.UUID
	cfg   config.Config
	store storage.Store

	mu       sync.Mutex
	acc      *tracking.Accumulator
	remember bool
	pending  *tracking.Change
}

// New builds a tracker from cfg. When remembering is enabled the total is
// restored from store; otherwise any stale total in store is deleted. A
// failing store never stops tracking: the tracker logs the failure and keeps
// counting in memory.
func New(cfg config.Config, store storage.Store) (*Tracker, error) {
	unit, ok := units.Canonical(cfg.Tracking.DistanceUnit)
	if !ok {
		return nil, &units.InvalidUnitError{Unit: string(cfg.Tracking.DistanceUnit)}
	}
	cfg.Tracking.DistanceUnit = unit

	t := &Tracker{
		id:       uuid.New(),
		cfg:      cfg,
		remember: cfg.Tracking.RememberAcrossSessions,
	}
	if store != nil {
		t.store = storage.Namespaced(store, cfg.Storage.Namespace)
		if ws, ok := t.store.(storage.WriterSetter); ok {
			ws.SetWriter(t.id.String())
		}
	}

	seed := 0.0
	if t.remember {
		seed = t.restore()
	} else {
		t.forget()
	}
	t.acc = tracking.NewAccumulator(seed, t.handleChange)

	return t, nil
}

func (t *Tracker) restore() float64 {
	if t.store == nil {
		monitoring.Logf("tracker %s: no store configured, distance will not be remembered", t.id)
		t.remember = false
		return 0
	}

	value, ok, err := t.store.Get(DistanceKey)
	if err != nil {
		t.stopRemembering(err)
		return 0
	}
	if !ok {
		return 0
	}

	total, err := strconv.ParseFloat(value, 64)
	if err != nil {
		t.stopRemembering(&storage.UnavailableError{
			Op:  "get",
			Key: DistanceKey,
			Err: errors.Wrapf(err, "stored distance %q is not a number", value),
		})
		return 0
	}
	// ParseFloat accepts "NaN" and "Inf"; neither can seed a running total.
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		t.stopRemembering(&storage.UnavailableError{
			Op:  "get",
			Key: DistanceKey,
			Err: errors.Errorf("stored distance %q is not a finite non-negative number", value),
		})
		return 0
	}
	return total
}

func (t *Tracker) forget() {
	if t.store == nil {
		return
	}
	if err := t.store.Delete(DistanceKey); err != nil {
		monitoring.Logf("tracker %s: failed to delete stale distance: %v", t.id, err)
	}
}

// persist writes the absolute total, never an increment.
func (t *Tracker) persist(totalPx float64) {
	if err := t.store.Set(DistanceKey, strconv.FormatFloat(totalPx, 'g', -1, 64)); err != nil {
		t.stopRemembering(err)
	}
}

func (t *Tracker) stopRemembering(err error) {
	monitoring.Logf("tracker %s: %v; continuing without remembering", t.id, err)
	t.remember = false
}

// handleChange runs with t.mu held.
func (t *Tracker) handleChange(c tracking.Change) error {
	if t.remember {
		t.persist(c.TotalPx)
	}
	t.pending = &c
	return nil
}

// Observe feeds a pointer position to the tracker. The configured callback
// runs after the tracker's lock is released, so it may query the tracker.
// Conversion and callback errors are returned.
func (t *Tracker) Observe(p tracking.Point) error {
	t.mu.Lock()
	t.pending = nil
	err := t.acc.Observe(p)
	change := t.pending
	t.mu.Unlock()

	if err != nil || change == nil {
		return err
	}
	return t.notify(*change)
}

func (t *Tracker) notify(c tracking.Change) error {
	cb := t.cfg.Tracking.OnDistanceChanged
	if cb == nil {
		return nil
	}

	total, err := units.ToPhysicalUnits(c.TotalPx, t.cfg.Tracking.DistanceUnit)
	if err != nil {
		return err
	}
	delta, err := units.ToPhysicalUnits(c.DeltaPx, t.cfg.Tracking.DistanceUnit)
	if err != nil {
		return err
	}
	return cb(total, delta)
}

// Run feeds positions from src until ctx is cancelled. Cancelling ctx is how
// the tracker unsubscribes. Per-event errors are logged, not fatal.
func (t *Tracker) Run(ctx context.Context, src tracking.Source) error {
	err := src.Run(ctx, func(p tracking.Point) {
		if err := t.Observe(p); err != nil {
			monitoring.Logf("tracker %s: %v", t.id, err)
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// DistanceTraveled returns the total in the configured unit.
func (t *Tracker) DistanceTraveled() (float64, error) {
	return units.ToPhysicalUnits(t.TotalPx(), t.cfg.Tracking.DistanceUnit)
}

// ClearDistanceTraveled resets the total and, when remembering, stores 0.
// The stored key is kept.
func (t *Tracker) ClearDistanceTraveled() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.acc.Clear()
	if t.remember {
		t.persist(0)
	}
}

// TotalPx returns the total in pixels.
func (t *Tracker) TotalPx() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.acc.TotalPx()
}

func (t *Tracker) ID() uuid.UUID {
	return t.id
}

// Unit returns the unit DistanceTraveled and the callback report in.
func (t *Tracker) Unit() units.Unit {
	return t.cfg.Tracking.DistanceUnit
}

// Remembering reports whether the total is still being persisted. It turns
// false after a store failure.
func (t *Tracker) Remembering() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remember
}
