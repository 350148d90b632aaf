package tracking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	eps = 0.00001
)

func TestDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	assert.InDelta(t, 181.57367, Distance(p1, p2), eps)
	assert.InDelta(t, 5.0, Distance(NewPoint(0, 0), NewPoint(3, 4)), eps)
}

func TestDistance_SamePointIsZero(t *testing.T) {
	for _, p := range []Point{{0, 0}, {-12.5, 7}, {1920, 1080}, {1e300, -1e300}} {
		assert.Equal(t, 0.0, Distance(p, p), "point %v", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{0, 0}, {3, 4}},
		{{-5, 2}, {7, -9}},
		{{0.25, 100}, {1e6, 3}},
	}
	for _, pair := range pairs {
		assert.InDelta(t, Distance(pair[0], pair[1]), Distance(pair[1], pair[0]), eps)
	}
}

func TestDistance_LargeCoordinates(t *testing.T) {
	// Squaring these would overflow a naive implementation.
	got := Distance(NewPoint(0, 0), NewPoint(3e200, 4e200))
	assert.InEpsilon(t, 5e200, got, 1e-12)
}

func TestDistance_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(Distance(NewPoint(math.NaN(), 0), NewPoint(1, 1))))
}

func TestNewPointFrom(t *testing.T) {
	assert.Equal(t, Point{X: -3, Y: 200}, NewPointFromHook(-3, 200))
	assert.Equal(t, Point{X: 1920, Y: 1080}, NewPointFromScreen(1920, 1080))
}
