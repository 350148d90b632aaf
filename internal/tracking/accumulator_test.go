package tracking

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	changes []Change
}

func (r *recorder) record(c Change) error {
	r.changes = append(r.changes, c)
	return nil
}

func TestAccumulator_FirstMoveSuppressed(t *testing.T) {
	rec := &recorder{}
	acc := NewAccumulator(0, rec.record)

	require.NoError(t, acc.Observe(NewPoint(0, 0)))
	assert.Empty(t, rec.changes)
	assert.True(t, acc.HasBaseline())
	assert.Equal(t, 0.0, acc.TotalPx())

	require.NoError(t, acc.Observe(NewPoint(3, 4)))
	require.Len(t, rec.changes, 1)
	assert.InDelta(t, 5.0, rec.changes[0].DeltaPx, eps)
	assert.InDelta(t, 5.0, rec.changes[0].TotalPx, eps)
}

func TestAccumulator_RunningSum(t *testing.T) {
	path := []Point{
		{10, 10}, {13, 14}, {13, 14}, {1, 9}, {-4, 21}, {100, 21}, {100, 0},
	}
	rec := &recorder{}
	acc := NewAccumulator(0, rec.record)

	for _, p := range path {
		require.NoError(t, acc.Observe(p))
	}

	require.Len(t, rec.changes, len(path)-1)
	sum := 0.0
	for i, c := range rec.changes {
		want := Distance(path[i], path[i+1])
		sum += want
		assert.InDelta(t, want, c.DeltaPx, eps, "delta %d", i)
		assert.InDelta(t, sum, c.TotalPx, eps, "total %d", i)
	}
	assert.InDelta(t, sum, acc.TotalPx(), eps)
}

func TestAccumulator_ZeroDeltaEmitted(t *testing.T) {
	rec := &recorder{}
	acc := NewAccumulator(0, rec.record)

	require.NoError(t, acc.Observe(NewPoint(5, 5)))
	require.NoError(t, acc.Observe(NewPoint(5, 5)))

	require.Len(t, rec.changes, 1)
	assert.Equal(t, Change{TotalPx: 0, DeltaPx: 0}, rec.changes[0])
}

func TestAccumulator_ClearKeepsBaseline(t *testing.T) {
	rec := &recorder{}
	acc := NewAccumulator(0, rec.record)

	require.NoError(t, acc.Observe(NewPoint(0, 0)))
	require.NoError(t, acc.Observe(NewPoint(6, 8)))
	assert.InDelta(t, 10.0, acc.TotalPx(), eps)

	acc.Clear()
	assert.Equal(t, 0.0, acc.TotalPx())
	assert.True(t, acc.HasBaseline())

	// The next move is measured from (6, 8), not suppressed.
	require.NoError(t, acc.Observe(NewPoint(9, 12)))
	require.Len(t, rec.changes, 2)
	assert.InDelta(t, 5.0, rec.changes[1].DeltaPx, eps)
	assert.InDelta(t, 5.0, rec.changes[1].TotalPx, eps)
}

func TestAccumulator_Seed(t *testing.T) {
	rec := &recorder{}
	acc := NewAccumulator(250, rec.record)
	assert.Equal(t, 250.0, acc.TotalPx())

	require.NoError(t, acc.Observe(NewPoint(0, 0)))
	require.NoError(t, acc.Observe(NewPoint(0, 10)))
	assert.InDelta(t, 260.0, acc.TotalPx(), eps)
	assert.InDelta(t, 260.0, rec.changes[0].TotalPx, eps)
}

func TestAccumulator_ListenerErrorReturned(t *testing.T) {
	boom := errors.New("boom")
	acc := NewAccumulator(0, func(Change) error { return boom })

	require.NoError(t, acc.Observe(NewPoint(0, 0)))
	err := acc.Observe(NewPoint(1, 0))
	assert.True(t, errors.Is(err, boom))
	// The total still advanced.
	assert.InDelta(t, 1.0, acc.TotalPx(), eps)
}

func TestAccumulator_NilListener(t *testing.T) {
	acc := NewAccumulator(0, nil)
	require.NoError(t, acc.Observe(NewPoint(0, 0)))
	require.NoError(t, acc.Observe(NewPoint(0, 2)))
	assert.InDelta(t, 2.0, acc.TotalPx(), eps)
}
