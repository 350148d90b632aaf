// Package units provides the physical distance units the tracker reports in
// and the pixel conversion for them.
package units

import (
	"fmt"
	"strings"
)

// Unit is a physical distance unit.
type Unit string

// Unit constants
const (
	Millimeter Unit = "mm"
	Inch       Unit = "inch"
)

// ScreenDPI is the pixel density assumed for every display.
const ScreenDPI = 96.0

// Pixel to unit ratios at ScreenDPI
const (
	millimetersPerPixel = 2.54 / ScreenDPI * 10
	inchesPerPixel      = millimetersPerPixel / 25.4
)

// ValidUnits contains all valid unit values
var ValidUnits = []Unit{Millimeter, Inch}

var aliases = map[string]Unit{
	"mm":          Millimeter,
	"millimeter":  Millimeter,
	"millimeters": Millimeter,
	"inch":        Inch,
	"inches":      Inch,
	"in":          Inch,
}

// InvalidUnitError is returned when a unit is outside the recognized set.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid distance unit %q (valid: %s)", e.Unit, GetValidUnitsString())
}

// Canonical maps a unit or one of its long forms to the canonical unit.
// Unlike ParseUnit it is case-sensitive and does not trim.
func Canonical(unit Unit) (Unit, bool) {
	u, ok := aliases[string(unit)]
	return u, ok
}

// IsValid reports whether unit is a canonical unit or one of its long forms.
func IsValid(unit Unit) bool {
	_, ok := Canonical(unit)
	return ok
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mm, inch"
}

// ParseUnit resolves a user supplied unit name, accepting the long forms
// ("millimeter", "inches", ...) as well as the canonical ones.
func ParseUnit(s string) (Unit, error) {
	if unit, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return unit, nil
	}
	return "", &InvalidUnitError{Unit: s}
}

// ToPhysicalUnits converts a distance in pixels to the target unit. Long
// forms accepted by ParseUnit convert the same as their canonical unit.
func ToPhysicalUnits(pixels float64, unit Unit) (float64, error) {
	u, ok := Canonical(unit)
	if !ok {
		return 0, &InvalidUnitError{Unit: string(unit)}
	}
	switch u {
	case Millimeter:
		return pixels * millimetersPerPixel, nil
	case Inch:
		return pixels * inchesPerPixel, nil
	default:
		return 0, &InvalidUnitError{Unit: string(unit)}
	}
}
