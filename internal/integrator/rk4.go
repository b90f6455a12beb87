// Package integrator implements a fixed-step RK4 state integrator: a
// single micro-step over (position, velocity) under an acceleration
// function that depends on (p, v, m) plus external thrust.
//
// smd delegates this to github.com/ChristopherRabotin/ode, an
// external RK4 solver keyed to time.Time epochs and a Propagator interface
// tied to smd's Orbit/Mission types. That interface doesn't fit this core's
// fixed-dt, plain-float-seconds micro-step model, so the step itself is
// reimplemented in-package in the same classical-RK4 shape smd's
// Propagate() drives — see DESIGN.md for why the dependency was not kept.
package integrator

import "github.com/inkorange/mission-control/internal/vec2"

// AccelFunc computes acceleration given the current position, velocity and
// mass. Implementations (gravity + drag + thrust) live in the flight
// package, which composes env.GravityAccel, env.DragAccel and the current
// thrust vector into a single function of this shape.
type AccelFunc func(p, v vec2.V, mass float64) vec2.V

// State is the (position, velocity) pair RK4 advances. Mass is not part of
// the integrated state: fuel consumption is applied once per micro-step
// before the integrator runs, so the accel function closes over the
// already-updated post-burn mass for the step.
type State struct {
	Position vec2.V
	Velocity vec2.V
}

// Step advances s by dt using classical 4th-order Runge-Kutta, evaluating
// accel at the four stage points with the fixed mass provided.
func Step(s State, mass float64, accel AccelFunc, dt float64) State {
	k1v, k1a := s.Velocity, accel(s.Position, s.Velocity, mass)

	p2 := vec2.Add(s.Position, vec2.Scale(s.Velocity, dt/2))
	v2 := vec2.Add(s.Velocity, vec2.Scale(k1a, dt/2))
	k2v, k2a := v2, accel(p2, v2, mass)

	p3 := vec2.Add(s.Position, vec2.Scale(v2, dt/2))
	v3 := vec2.Add(s.Velocity, vec2.Scale(k2a, dt/2))
	k3v, k3a := v3, accel(p3, v3, mass)

	p4 := vec2.Add(s.Position, vec2.Scale(v3, dt))
	v4 := vec2.Add(s.Velocity, vec2.Scale(k3a, dt))
	k4v, k4a := v4, accel(p4, v4, mass)

	dPos := vec2.Scale(
		vec2.Add(vec2.Add(k1v, vec2.Scale(k2v, 2)), vec2.Add(vec2.Scale(k3v, 2), k4v)),
		dt/6,
	)
	dVel := vec2.Scale(
		vec2.Add(vec2.Add(k1a, vec2.Scale(k2a, 2)), vec2.Add(vec2.Scale(k3a, 2), k4a)),
		dt/6,
	)

	return State{
		Position: vec2.Add(s.Position, dPos),
		Velocity: vec2.Add(s.Velocity, dVel),
	}
}
