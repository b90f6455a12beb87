// Package orbit recovers Keplerian elements from instantaneous 2D
// position/velocity state vectors, and implements Hohmann transfer,
// stability and target-match tests.
//
// Grounded on smd's orbit.go (Orbit type, Elements(), ε-tolerant
// comparisons via gonum/floats), collapsed from smd's 3D
// R/V-vector + COE machinery down to the 2D-equatorial case this core's
// Non-goals require (single central body, no inclination/RAAN/argument of
// perigee).
package orbit

import (
	"encoding/json"
	"math"

	"github.com/gonum/floats"

	"github.com/inkorange/mission-control/internal/vec2"
)

// zeroTol matches smd's EqualWithinAbs tolerance used throughout
// orbit.go for near-zero comparisons.
const zeroTol = 1e-9

// Elements holds the recovered orbital elements,
// with apoapsis/periapsis measured above the body's surface.
type Elements struct {
	SemiMajorAxis float64 // negative for hyperbolic orbits
	Eccentricity  float64
	Apoapsis      float64
	Periapsis     float64
	Period        float64 // +Inf when SemiMajorAxis <= 0
}

// Recover computes Elements from position p, velocity v around a body with
// gravitational parameter mu and surface radius bodyRadius.
func Recover(p, v vec2.V, mu, bodyRadius float64) Elements {
	r := vec2.Magnitude(p)
	speed := vec2.Magnitude(v)

	energy := 0.5*speed*speed - mu/r
	a := semiMajorAxisFromEnergy(energy, mu)

	h := vec2.CrossZ(p, v) // specific angular momentum, scalar in 2D
	e := eccentricity(p, v, mu)

	var apo, peri, period float64
	if a > 0 {
		apo = a*(1+e) - bodyRadius
		peri = a*(1-e) - bodyRadius
		period = 2 * math.Pi * math.Sqrt(a*a*a/mu)
	} else {
		// Hyperbolic/parabolic: apoapsis is undefined (orbit escapes), so
		// only periapsis is physically meaningful; apoapsis is reported as
		// +Inf to signal "never returns" without faking a finite number.
		apo = math.Inf(1)
		peri = a*(1-e) - bodyRadius
		period = math.Inf(1)
	}
	_ = h // retained for callers that want angular momentum; not in Elements
	return Elements{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Apoapsis:      apo,
		Periapsis:     peri,
		Period:        period,
	}
}

// elementsJSON mirrors Elements but with +/-Inf-safe fields, since JSON
// has no literal infinity.
type elementsJSON struct {
	SemiMajorAxis float64  `json:"semi_major_axis"`
	Eccentricity  float64  `json:"eccentricity"`
	Apoapsis      *float64 `json:"apoapsis"`
	Periapsis     float64  `json:"periapsis"`
	Period        *float64 `json:"period"`
}

// MarshalJSON implements json.Marshaler, encoding +Inf fields (an escaping
// hyperbolic apoapsis, an unbound orbital period) as null rather than
// failing the way encoding/json does on a bare float64 Inf.
func (e Elements) MarshalJSON() ([]byte, error) {
	out := elementsJSON{
		SemiMajorAxis: e.SemiMajorAxis,
		Eccentricity:  e.Eccentricity,
		Periapsis:     e.Periapsis,
	}
	if !math.IsInf(e.Apoapsis, 0) {
		v := e.Apoapsis
		out.Apoapsis = &v
	}
	if !math.IsInf(e.Period, 0) {
		v := e.Period
		out.Period = &v
	}
	return json.Marshal(out)
}

// AngularMomentum returns the scalar specific angular momentum p×v (2D
// cross product z-component) for callers that need it directly (e.g. the
// estimate report).
func AngularMomentum(p, v vec2.V) float64 {
	return vec2.CrossZ(p, v)
}

func semiMajorAxisFromEnergy(energy, mu float64) float64 {
	if floats.EqualWithinAbs(energy, 0, zeroTol) {
		// Parabolic: a is formally infinite; treat as a large negative
		// sentinel-free case by returning +Inf's dual via a very large
		// number is unsafe, so we report the mathematically exact value.
		return math.Inf(1)
	}
	return -mu / (2 * energy)
}

// eccentricity computes |e| from the eccentricity vector
// e = (|v|^2*p - (p.v)*v)/mu - p_hat.
func eccentricity(p, v vec2.V, mu float64) float64 {
	r := vec2.Magnitude(p)
	if r == 0 || mu == 0 {
		return 0
	}
	speed2 := vec2.Dot(v, v)
	pv := vec2.Dot(p, v)
	term := vec2.Scale(p, speed2)
	term = vec2.Sub(term, vec2.Scale(v, pv))
	eVec := vec2.Scale(term, 1/mu)
	eVec = vec2.Sub(eVec, vec2.Normalize(p))
	return vec2.Magnitude(eVec)
}

// CircularVelocity returns the speed of a circular orbit at radius r.
func CircularVelocity(mu, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(mu / r)
}

// EscapeVelocity returns the local escape velocity at radius r.
func EscapeVelocity(mu, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(2 * mu / r)
}

// VisViva returns orbital speed from the vis-viva equation given radius r
// and semi-major axis a.
func VisViva(mu, r, a float64) float64 {
	if r <= 0 {
		return 0
	}
	val := mu * (2/r - 1/a)
	if val < 0 {
		return 0
	}
	return math.Sqrt(val)
}

// HohmannResult holds the two burns of a Hohmann transfer and their sum.
type HohmannResult struct {
	Burn1 float64
	Burn2 float64
	Total float64
}

// Hohmann computes the two-burn transfer between circular orbits of radius
// r1 and r2 around a body with parameter mu. Equal radii yield a
// zero-valued result.
func Hohmann(mu, r1, r2 float64) HohmannResult {
	if floats.EqualWithinAbs(r1, r2, zeroTol) {
		return HohmannResult{}
	}
	aT := (r1 + r2) / 2
	v1Circ := CircularVelocity(mu, r1)
	v2Circ := CircularVelocity(mu, r2)
	v1Transfer := VisViva(mu, r1, aT)
	v2Transfer := VisViva(mu, r2, aT)
	burn1 := math.Abs(v1Transfer - v1Circ)
	burn2 := math.Abs(v2Circ - v2Transfer)
	return HohmannResult{Burn1: burn1, Burn2: burn2, Total: burn1 + burn2}
}

// Stable reports whether the orbit described by e is a closed, bound orbit
// entirely above the surface: eccentricity < 1, periapsis > 0, apoapsis > 0.
func (e Elements) Stable() bool {
	return e.Eccentricity < 1 && e.Periapsis > 0 && e.Apoapsis > 0
}

// Bound describes an inclusive numeric interval; either side may be
// infinite to mean "unbounded".
type Bound struct {
	Min, Max float64
}

// Contains reports whether v falls within the (possibly unbounded) bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Target describes an orbital target window.
type Target struct {
	Periapsis Bound
	Apoapsis  Bound
}

// Suborbital reports whether this target describes a suborbital mission:
// no orbit required, signaled by an unbounded-below periapsis minimum.
func (t Target) Suborbital() bool {
	return math.IsInf(t.Periapsis.Min, -1)
}

// Matches reports whether e's periapsis and apoapsis both lie within t's
// bounds.
func (e Elements) Matches(t Target) bool {
	return t.Periapsis.Contains(e.Periapsis) && t.Apoapsis.Contains(e.Apoapsis)
}
