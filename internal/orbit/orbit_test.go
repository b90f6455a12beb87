package orbit

import (
	"math"
	"testing"

	"github.com/inkorange/mission-control/internal/vec2"
)

const (
	muEarth = 6.674e-11 * 5.972e24
	rEarth  = 6.371e6
)

func TestCircularOrbitRoundTrip(t *testing.T) {
	r := rEarth + 400000
	v := CircularVelocity(muEarth, r)
	p := vec2.V{X: r, Y: 0}
	vel := vec2.V{X: 0, Y: v}
	e := Recover(p, vel, muEarth, rEarth)
	if e.Eccentricity >= 0.01 {
		t.Fatalf("eccentricity = %f, want < 0.01", e.Eccentricity)
	}
	want := r - rEarth
	if math.Abs(e.Apoapsis-want) > 10000 || math.Abs(e.Periapsis-want) > 10000 {
		t.Fatalf("apo/peri = %f/%f, want ~%f", e.Apoapsis, e.Periapsis, want)
	}
}

func TestLEOCircularVelocity(t *testing.T) {
	v := CircularVelocity(muEarth, rEarth+200000)
	if v < 7700 || v > 7850 {
		t.Fatalf("LEO circular velocity = %f, want 7700-7850", v)
	}
}

func TestGEOPeriod(t *testing.T) {
	r := rEarth + 35786000
	e := Recover(vec2.V{X: r, Y: 0}, vec2.V{X: 0, Y: CircularVelocity(muEarth, r)}, muEarth, rEarth)
	if e.Period < 85000 || e.Period > 87500 {
		t.Fatalf("GEO period = %f, want 85000-87500", e.Period)
	}
}

func TestEscapeVelocityRatio(t *testing.T) {
	r := rEarth + 500000
	ratio := EscapeVelocity(muEarth, r) / CircularVelocity(muEarth, r)
	if math.Abs(ratio-math.Sqrt2) > 1e-5 {
		t.Fatalf("escape/circular = %f, want sqrt(2)", ratio)
	}
}

func TestHohmannSymmetryAndLEOtoGEO(t *testing.T) {
	r := rEarth + 400000
	zero := Hohmann(muEarth, r, r)
	if math.Abs(zero.Total) > 1e-5 {
		t.Fatalf("Hohmann(r,r).Total = %f, want 0", zero.Total)
	}
	leo := rEarth + 200000
	geo := rEarth + 35786000
	h := Hohmann(muEarth, leo, geo)
	if h.Total < 3800 || h.Total > 4100 {
		t.Fatalf("LEO->GEO Hohmann total = %f, want 3800-4100", h.Total)
	}
	if !(h.Burn1 > h.Burn2 && h.Burn2 > 0) {
		t.Fatalf("expected burn1 > burn2 > 0, got %f, %f", h.Burn1, h.Burn2)
	}
}

func TestEscapeFromLEO(t *testing.T) {
	v := EscapeVelocity(muEarth, rEarth+200000)
	if v < 10800 || v > 11100 {
		t.Fatalf("escape velocity from 200km LEO = %f, want 10800-11100", v)
	}
}

func TestStableAndTargetMatch(t *testing.T) {
	e := Elements{Eccentricity: 0.01, Periapsis: 190000, Apoapsis: 210000}
	if !e.Stable() {
		t.Fatalf("expected stable orbit")
	}
	target := Target{
		Periapsis: Bound{Min: 180000, Max: 220000},
		Apoapsis:  Bound{Min: 180000, Max: 220000},
	}
	if !e.Matches(target) {
		t.Fatalf("expected orbit to match target")
	}
}

func TestSuborbitalTargetDetection(t *testing.T) {
	target := Target{Periapsis: Bound{Min: math.Inf(-1), Max: math.Inf(1)}}
	if !target.Suborbital() {
		t.Fatalf("expected suborbital target to be detected")
	}
}

func TestHyperbolicHasNegativeSemiMajorAxis(t *testing.T) {
	r := rEarth + 200000
	vEsc := EscapeVelocity(muEarth, r) * 1.2
	e := Recover(vec2.V{X: r, Y: 0}, vec2.V{X: 0, Y: vEsc}, muEarth, rEarth)
	if e.Eccentricity <= 1 {
		t.Fatalf("expected eccentricity > 1, got %f", e.Eccentricity)
	}
	if e.SemiMajorAxis >= 0 {
		t.Fatalf("expected negative semi-major axis, got %f", e.SemiMajorAxis)
	}
}
