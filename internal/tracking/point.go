package tracking

import (
	"gonum.org/v1/gonum/floats"
)

// Point is a pointer position in device pixels. Screen coordinates are absolute,
// so scrolling a window never shows up as movement.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// NewPointFromHook converts the int16 coordinates carried by hook events.
func NewPointFromHook(x, y int16) Point {
	return Point{
		X: float64(x),
		Y: float64(y),
	}
}

// NewPointFromScreen converts the int coordinates returned by robotgo.
func NewPointFromScreen(x, y int) Point {
	return Point{
		X: float64(x),
		Y: float64(y),
	}
}

// Distance returns the Euclidean distance between a and b. NaN coordinates
// yield NaN.
func Distance(a, b Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}
