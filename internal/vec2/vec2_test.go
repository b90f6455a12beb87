package vec2

import (
	"math"
	"testing"
)

func TestNormalizeZeroSafe(t *testing.T) {
	if got := Normalize(Zero); got != Zero {
		t.Fatalf("Normalize(Zero) = %v, want Zero", got)
	}
	u := Normalize(V{3, 4})
	if math.Abs(Magnitude(u)-1) > 1e-9 {
		t.Fatalf("Normalize(3,4) magnitude = %f, want 1", Magnitude(u))
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	v := V{1, 0}
	got := Rotate(v, math.Pi/2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Fatalf("Rotate((1,0), pi/2) = %v, want (0,1)", got)
	}
}

func TestDotCrossZ(t *testing.T) {
	a, b := V{1, 0}, V{0, 1}
	if Dot(a, b) != 0 {
		t.Fatalf("Dot(a,b) = %f, want 0", Dot(a, b))
	}
	if CrossZ(a, b) != 1 {
		t.Fatalf("CrossZ(a,b) = %f, want 1", CrossZ(a, b))
	}
}

func TestClampLerp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Fatalf("Clamp(5,0,1) = %f, want 1", Clamp(5, 0, 1))
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Fatalf("Clamp(-5,0,1) = %f, want 0", Clamp(-5, 0, 1))
	}
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Fatalf("Lerp(0,10,0.5) = %f, want 5", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	if math.Abs(Rad2Deg(Deg2Rad(37))-37) > 1e-9 {
		t.Fatalf("deg/rad round trip failed")
	}
}
