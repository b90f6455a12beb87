// Package vec2 implements the 2D vector math shared by the environment,
// propulsion, orbit and integrator packages. The rocket-game core is
// strictly equatorial (no 3D inclination), so a dedicated 2-component type
// is simpler and cheaper than routing every position/velocity through
// gonum/matrix's general-purpose Dense or Vector types.
package vec2

import (
	"math"

	"github.com/gonum/floats"
)

// zeroTol is the tolerance below which a vector's magnitude is treated as
// exactly zero, matching smd's Unit()/Sign() tolerant-zero pattern.
const zeroTol = 1e-12

// V is an ordered pair (x, y) in meters, meters/second, or a unitless
// direction depending on context.
type V struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the additive identity.
var Zero = V{0, 0}

// Add returns a+b.
func Add(a, b V) V {
	return V{a.X + b.X, a.Y + b.Y}
}

// Sub returns a-b.
func Sub(a, b V) V {
	return V{a.X - b.X, a.Y - b.Y}
}

// Scale returns a scaled by s.
func Scale(a V, s float64) V {
	return V{a.X * s, a.Y * s}
}

// Magnitude returns |a|.
func Magnitude(a V) float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// Normalize returns the unit vector of a, or Zero when a is (numerically)
// the zero vector. Zero-safe, matching math.go's Unit() in smd.
func Normalize(a V) V {
	m := Magnitude(a)
	if floats.EqualWithinAbs(m, 0, zeroTol) {
		return Zero
	}
	return V{a.X / m, a.Y / m}
}

// Dot returns the inner product a.b.
func Dot(a, b V) float64 {
	return a.X*b.X + a.Y*b.Y
}

// CrossZ returns the scalar z-component of the 3D cross product of a and b
// extended into the xy-plane: a.x*b.y - a.y*b.x.
func CrossZ(a, b V) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Rotate returns a rotated counter-clockwise by theta radians about the
// origin. A negative theta rotates clockwise.
func Rotate(a V, theta float64) V {
	s, c := math.Sincos(theta)
	return V{
		X: a.X*c - a.Y*s,
		Y: a.X*s + a.Y*c,
	}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns the linear interpolation between a and b at t (unclamped).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
