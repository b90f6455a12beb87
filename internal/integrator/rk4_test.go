package integrator

import (
	"math"
	"testing"

	"github.com/inkorange/mission-control/internal/env"
	"github.com/inkorange/mission-control/internal/vec2"
)

func TestEnergyConservationInVacuumCircularOrbit(t *testing.T) {
	mu := env.Earth.GM()
	r := env.Earth.Radius + 400000
	speed := math.Sqrt(mu / r)

	accel := func(p, v vec2.V, mass float64) vec2.V {
		return env.Earth.GravityAccel(p)
	}

	state := State{Position: vec2.V{X: r, Y: 0}, Velocity: vec2.V{X: 0, Y: speed}}
	const dt = 0.01
	steps := int(100 / dt)
	for i := 0; i < steps; i++ {
		state = Step(state, 1000, accel, dt)
	}

	rFinal := vec2.Magnitude(state.Position)
	vFinal := vec2.Magnitude(state.Velocity)
	if math.Abs(rFinal-r) > 1000 {
		t.Fatalf("radius drifted by %f m, want < 1000", math.Abs(rFinal-r))
	}
	if math.Abs(vFinal-speed) > 10 {
		t.Fatalf("speed drifted by %f m/s, want < 10", math.Abs(vFinal-speed))
	}
}

func TestStepWithThrustAccelerates(t *testing.T) {
	accel := func(p, v vec2.V, mass float64) vec2.V {
		return vec2.V{X: 10, Y: 0} // constant thrust accel, no gravity
	}
	state := State{Position: vec2.Zero, Velocity: vec2.Zero}
	state = Step(state, 1000, accel, 1.0)
	if state.Velocity.X <= 0 {
		t.Fatalf("expected positive velocity after thrust step, got %v", state.Velocity)
	}
}
