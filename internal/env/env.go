// Package env implements the gravity and atmosphere model: a
// frozen Body catalog in the shape of smd's CelestialObject, plus
// the exponential-atmosphere and drag functions the flight simulator calls
// every micro-step.
package env

import (
	"math"

	"github.com/inkorange/mission-control/internal/vec2"
)

// Standard gravity, used by propulsion's Tsiolkovsky and mass-flow math and
// by scoring's suborbital delta-v estimate.
const G0 = 9.80665

// Body defines a celestial body's gravitational and atmospheric parameters.
// Mirrors smd's CelestialObject: a frozen value, never mutated once
// constructed, with package-level instances for known bodies.
type Body struct {
	Name string
	// Radius is the body's surface radius in meters.
	Radius float64
	// mu is the standard gravitational parameter G*M, unexported the same
	// way smd keeps mu private on CelestialObject (case-accessed via GM()).
	mu float64
	// Rho0 is surface atmospheric density in kg/m^3 (0 for airless bodies).
	Rho0 float64
	// ScaleHeight is the atmosphere's exponential scale height in meters.
	ScaleHeight float64
	// KarmanLine is the altitude above which atmosphere is treated as
	// vacuum, in meters.
	KarmanLine float64
	// SurfaceSpeed is the eastward equatorial rotation speed in m/s.
	SurfaceSpeed float64
}

// GM returns mu, the body's standard gravitational parameter.
func (b Body) GM() float64 {
	return b.mu
}

// String implements fmt.Stringer.
func (b Body) String() string {
	return b.Name
}

// Earth is the only body this core currently simulates against.
var Earth = Body{
	Name:         "Earth",
	Radius:       6.371e6,
	mu:           6.674e-11 * 5.972e24,
	Rho0:         1.225,
	ScaleHeight:  8500,
	KarmanLine:   100000,
	SurfaceSpeed: 465.1,
}

// Global drag constants: a single Cd/area pair for the whole
// vehicle, not a per-part model.
const (
	DragCoefficient = 0.2
	ReferenceArea   = 10.0 // m^2
)

// Gravity returns the scalar gravitational acceleration g(h) at altitude h
// above the body's surface: mu / (R+h)^2.
func (b Body) Gravity(altitude float64) float64 {
	r := b.Radius + altitude
	if r <= 0 {
		return 0
	}
	return b.mu / (r * r)
}

// GravityAccel returns the vector gravitational acceleration at position p
// (meters from body center), always directed toward the center. Returns
// the zero vector when p is (numerically) the origin rather than dividing
// by zero.
func (b Body) GravityAccel(p vec2.V) vec2.V {
	r := vec2.Magnitude(p)
	if r == 0 {
		return vec2.Zero
	}
	scale := -b.mu / (r * r * r)
	return vec2.Scale(p, scale)
}

// AtmosphericDensity returns rho(h), the exponential atmosphere model.
// Below the surface it clamps to Rho0; above the Karman line it is exactly
// zero, a hard vacuum cutoff.
func (b Body) AtmosphericDensity(altitude float64) float64 {
	if altitude < 0 {
		return b.Rho0
	}
	if altitude > b.KarmanLine {
		return 0
	}
	return b.Rho0 * math.Exp(-altitude/b.ScaleHeight)
}

// DragForceMagnitude returns the scalar drag force F = 1/2 * rho * v^2 * Cd * A.
func DragForceMagnitude(rho, speed float64) float64 {
	return 0.5 * rho * speed * speed * DragCoefficient * ReferenceArea
}

// DragAccel returns the vector drag acceleration opposing velocity v at
// altitude h with vehicle mass m. Returns zero when the vehicle is
// stationary, above the Karman line, or massless.
func (b Body) DragAccel(v vec2.V, altitude, mass float64) vec2.V {
	speed := vec2.Magnitude(v)
	if speed == 0 || altitude >= b.KarmanLine || mass <= 0 {
		return vec2.Zero
	}
	rho := b.AtmosphericDensity(altitude)
	if rho == 0 {
		return vec2.Zero
	}
	force := DragForceMagnitude(rho, speed)
	dir := vec2.Normalize(v)
	return vec2.Scale(dir, -force/mass)
}
