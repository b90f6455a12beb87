// Package flight implements the staged-vehicle flight simulator: the heart
// of this module, composing the environment, propulsion,
// orbit and integrator packages into a fixed-timestep physics loop with a
// discrete stage state machine, event log, snapshot history and
// termination classifier.
//
// Grounded on smd's Mission/Propagate() loop (mission.go) for the
// overall tick-and-log shape, and waypoints.go's Waypoint/Action state
// machine for the discrete staging transitions.
package flight

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"

	"github.com/inkorange/mission-control/internal/env"
	"github.com/inkorange/mission-control/internal/integrator"
	"github.com/inkorange/mission-control/internal/orbit"
	"github.com/inkorange/mission-control/internal/propulsion"
	"github.com/inkorange/mission-control/internal/vec2"
)

// Physical/control constants governing step size and warp limits.
const (
	FixedDT        = 0.01 // s, reference physics step
	DtRealCap      = 0.1  // s, spiral-of-death guard
	MinTimeScale   = 1.0
	MaxTimeScale   = 100.0
	karmanLine     = 100000.0 // m
)

// Simulator is the staged-vehicle flight simulator.
// Not thread-safe: must be driven from a single logical
// goroutine/task via Tick.
type Simulator struct {
	catalog map[string]EngineDef
	rocket  RocketConfig
	mission Mission
	body    env.Body

	stages      []StageRuntime
	activeStage int

	state     SimState
	throttle  float64
	pitchDeg  float64
	timeScale float64

	started bool
	running bool
	outcome Outcome

	events  []FlightEvent
	history []FlightSnapshot

	totalDeltaVUsed float64

	logger kitlog.Logger
}

// NewSimulator validates rocket against catalog
// and constructs a Simulator in its pre-flight state: StageRuntimes
// derived, position/velocity set to the launch pad, Ignition recorded for
// stage 0, and an initial snapshot appended. The simulator is "not yet
// running" until Start is called. A nil logger is legal and becomes a
// no-op logger — logging never perturbs the simulation.
func NewSimulator(rocket RocketConfig, mission Mission, catalog map[string]EngineDef, logger kitlog.Logger) (*Simulator, error) {
	if err := rocket.Validate(catalog); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	body := env.Earth
	stages := make([]StageRuntime, len(rocket.Stages))
	for i, sc := range rocket.Stages {
		stages[i] = newStageRuntime(sc, catalog)
	}

	s := &Simulator{
		catalog:     catalog,
		rocket:      rocket,
		mission:     mission,
		body:        body,
		stages:      stages,
		activeStage: 0,
		state: SimState{
			Position: vec2.V{X: body.Radius, Y: 0},
			Velocity: vec2.V{X: 0, Y: body.SurfaceSpeed},
			Mass:     rocket.TotalMass(catalog),
			Time:     0,
			Altitude: 0,
			Fuel:     stages[0].FuelRemaining,
		},
		throttle:  1.0,
		pitchDeg:  0,
		timeScale: MinTimeScale,
		logger:    kitlog.With(logger, "component", "flight"),
	}

	s.emit(0, Ignition, intPtr(0), "stage 0 ignition")
	s.recordSnapshot()
	return s, nil
}

// Start transitions the simulator into the running state. Idempotent.
func (s *Simulator) Start() {
	if s.outcome.Terminal() {
		return
	}
	s.started = true
	s.running = true
}

// Running reports whether the simulator is currently advancing ticks.
func (s *Simulator) Running() bool {
	return s.running
}

// CurrentOutcome returns the terminal outcome, or Running if none yet.
func (s *Simulator) CurrentOutcome() Outcome {
	return s.outcome
}

// CurrentState returns a value copy of the live simulation state.
func (s *Simulator) CurrentState() SimState {
	return s.state
}

// ActiveStageIndex returns the index of the currently burning stage.
func (s *Simulator) ActiveStageIndex() int {
	return s.activeStage
}

// Events returns the append-only event log recorded so far. Callers must
// not mutate the returned slice's backing array across calls; a defensive
// copy is returned.
func (s *Simulator) Events() []FlightEvent {
	out := make([]FlightEvent, len(s.events))
	copy(out, s.events)
	return out
}

// History returns the snapshot history recorded so far (a defensive copy;
// snapshots are value types, so consumers may freely retain copies).
func (s *Simulator) History() []FlightSnapshot {
	out := make([]FlightSnapshot, len(s.history))
	copy(out, s.history)
	return out
}

// CurrentOrbit returns the orbital elements at the current state, or nil
// below the recording threshold.
func (s *Simulator) CurrentOrbit() *orbit.Elements {
	if s.state.Altitude <= snapshotOrbitThreshold {
		return nil
	}
	e := orbit.Recover(s.state.Position, s.state.Velocity, s.body.GM(), s.body.Radius)
	return &e
}

// SetThrottle sets the active stage's throttle. Zero (and NaN, which snaps
// to zero) cuts thrust on any engine; otherwise a throttleable primary
// engine clamps x into [MinThrottle, 1] and a non-throttleable one snaps to
// 1 for positive x and 0 for negative x. Idempotent, may be called between
// ticks.
func (s *Simulator) SetThrottle(x float64) {
	if math.IsNaN(x) {
		x = 0
	}
	if x == 0 {
		s.throttle = 0
		return
	}
	def := s.stages[s.activeStage].primaryEngine(s.catalog)
	if def.Throttleable {
		s.throttle = vec2.Clamp(x, def.MinThrottle, 1)
		return
	}
	if x > 0 {
		s.throttle = 1
	} else {
		s.throttle = 0
	}
}

// SetPitch clamps deg into [0,90] degrees from local vertical.
func (s *Simulator) SetPitch(deg float64) {
	if math.IsNaN(deg) {
		deg = 0
	}
	s.pitchDeg = vec2.Clamp(deg, 0, 90)
}

// SetTimeScale clamps factor into [MinTimeScale, MaxTimeScale]. NaN or
// zero snap to MinTimeScale rather than failing.
func (s *Simulator) SetTimeScale(factor float64) {
	if math.IsNaN(factor) || factor == 0 {
		factor = MinTimeScale
	}
	s.timeScale = vec2.Clamp(factor, MinTimeScale, MaxTimeScale)
}

// TriggerStageSeparation discards the active stage (dry + any remaining
// fuel) and activates the next one. No-op if no upper stage remains;
// separating past the last stage is never an error.
func (s *Simulator) TriggerStageSeparation() {
	if s.activeStage >= len(s.stages)-1 {
		return
	}
	s.separateActiveStage()
}

func (s *Simulator) separateActiveStage() {
	discarded := s.stages[s.activeStage]
	discardedMass := discarded.DryMass + discarded.FuelRemaining
	s.state.Mass -= discardedMass
	idx := s.activeStage
	s.emit(s.state.Time, StageSeparation, intPtr(idx), fmt.Sprintf("stage %d separated", idx))
	s.activeStage++
	s.state.Fuel = s.stages[s.activeStage].FuelRemaining
	s.emit(s.state.Time, Ignition, intPtr(s.activeStage), fmt.Sprintf("stage %d ignition", s.activeStage))
}

// Abort sets the terminal outcome to Aborted and stops the simulator. No
// further ticks advance after this call.
func (s *Simulator) Abort() {
	if s.outcome.Terminal() {
		return
	}
	s.outcome = Aborted
	s.running = false
	s.emit(s.state.Time, Abort, nil, "flight aborted")
	s.logger.Log("level", "warning", "event", "abort", "time", s.state.Time)
}

// Tick advances the simulation by dtReal seconds of real time, scaled by
// the current time acceleration, in FixedDT-sized physics micro-steps.
// A single snapshot is appended representing the end-of-tick state.
// No-op when the simulator isn't running.
func (s *Simulator) Tick(dtReal float64) {
	if !s.running || s.outcome.Terminal() {
		return
	}
	if dtReal > DtRealCap {
		dtReal = DtRealCap
	}
	if dtReal <= 0 {
		return
	}

	dtSim := dtReal * s.timeScale
	nSteps := int(math.Ceil(dtSim / FixedDT))
	if nSteps < 1 {
		nSteps = 1
	}
	actualDT := dtSim / float64(nSteps)

	for i := 0; i < nSteps; i++ {
		s.physicsStep(actualDT)
		if s.outcome.Terminal() {
			break
		}
	}
	s.recordSnapshot()
}

// physicsStep executes one fixed-size physics micro-step: effective-thrust
// interpolation, fuel consumption, auto-staging, RK4 integration,
// delta-v accounting, and termination classification.
func (s *Simulator) physicsStep(dt float64) {
	active := &s.stages[s.activeStage]

	// 1. Effective-thrust interpolation, blended linearly by altitude
	// rather than by ambient pressure ratio.
	f := math.Min(1, s.state.Altitude/karmanLine)
	thrustSL, thrustVac := active.TotalThrustSeaLevel, active.TotalThrustVacuum
	ispSL, ispVac := active.IspSeaLevel, active.IspVacuum
	effThrust := thrustSL + f*(thrustVac-thrustSL)
	effIsp := ispSL + f*(ispVac-ispSL)

	// 2. Thrust vector + fuel consumption.
	var thrustVec vec2.V
	if s.state.Fuel > 0 && s.throttle > 0 {
		currentThrust := effThrust * s.throttle
		radial := vec2.Normalize(s.state.Position)
		dir := vec2.Rotate(radial, -vec2.Deg2Rad(s.pitchDeg))
		thrustVec = vec2.Scale(dir, currentThrust)

		mdot := propulsion.MassFlowRate(currentThrust, effIsp)
		consumed := math.Min(mdot*dt, active.FuelRemaining)
		active.FuelRemaining -= consumed
		s.state.Mass -= consumed
		s.state.Fuel = active.FuelRemaining
	}

	// 3. Auto-stage on fuel depletion.
	if active.FuelRemaining <= 0 && s.activeStage < len(s.stages)-1 {
		idx := s.activeStage
		s.emit(s.state.Time, FuelDepleted, intPtr(idx), fmt.Sprintf("stage %d fuel depleted", idx))
		s.separateActiveStage()
	}

	// 4. Integrate.
	accel := s.accelFunc(thrustVec)
	next := integrator.Step(integrator.State{Position: s.state.Position, Velocity: s.state.Velocity}, s.state.Mass, accel, dt)
	prevSpeed := vec2.Magnitude(s.state.Velocity)
	s.state.Position = next.Position
	s.state.Velocity = next.Velocity
	s.state.Altitude = vec2.Magnitude(s.state.Position) - s.body.Radius
	s.state.Time += dt

	// 5. Delta-v accounting (coarse: sums |delta speed| per micro-step,
	// conflating acceleration and deceleration).
	newSpeed := vec2.Magnitude(s.state.Velocity)
	s.totalDeltaVUsed += math.Abs(newSpeed - prevSpeed)

	// 6. Termination classifier (ordered).
	s.classifyTermination()
}

// accelFunc composes gravity, drag and the given constant thrust vector
// into the RK4 acceleration function for one micro-step.
func (s *Simulator) accelFunc(thrust vec2.V) integrator.AccelFunc {
	body := s.body
	return func(p, v vec2.V, mass float64) vec2.V {
		r := vec2.Magnitude(p)
		if r == 0 || mass <= 0 {
			return vec2.Zero
		}
		aGrav := body.GravityAccel(p)
		altitude := r - body.Radius
		aDrag := body.DragAccel(v, altitude, mass)
		aThrust := vec2.Scale(thrust, 1/mass)
		return vec2.Add(vec2.Add(aGrav, aDrag), aThrust)
	}
}

// classifyTermination runs the ordered termination checks: crash, then
// mission completion, then orbital achievement, then fuel exhaustion.
func (s *Simulator) classifyTermination() {
	altitude := s.state.Altitude

	// Crash.
	if altitude < 0 {
		s.finish(Crash, "impacted the surface")
		return
	}

	req := s.mission.Requirements
	target := req.TargetOrbit

	// Suborbital-altitude mission (no orbit required, just reach an
	// altitude target).
	if target != nil && target.Suborbital() && altitude >= target.Apoapsis.Min {
		s.finish(MissionComplete, "reached target altitude")
		return
	}

	// Orbital evaluation (only meaningful once clear of the noisy
	// near-ground regime).
	if altitude > karmanLine {
		elements := orbit.Recover(s.state.Position, s.state.Velocity, s.body.GM(), s.body.Radius)
		stable := elements.Stable()
		switch {
		case stable && target != nil && elements.Matches(*target):
			s.finish(MissionComplete, "achieved target orbit")
			return
		case stable && target == nil && elements.Periapsis > karmanLine:
			s.finish(OrbitAchieved, "achieved stable orbit")
			return
		}

		// Fuel-exhausted suborbital: spent everything without reaching a
		// stable orbit.
		if s.remainingFuel() <= 0 && elements.Periapsis < 0 {
			s.finish(Suborbital, "ran out of fuel short of orbit")
			return
		}
	}
}

// remainingFuel sums fuel across the active stage and every stage above it
// that hasn't separated yet.
func (s *Simulator) remainingFuel() float64 {
	var total float64
	for i := s.activeStage; i < len(s.stages); i++ {
		total += s.stages[i].FuelRemaining
	}
	return total
}

// finish records the terminal outcome and stops the simulator. Success
// outcomes (OrbitAchieved, MissionComplete) also append an
// OrbitAchievedEvent; failure outcomes are logged but add no event.
func (s *Simulator) finish(outcome Outcome, label string) {
	s.outcome = outcome
	s.running = false
	if outcome == OrbitAchieved || outcome == MissionComplete {
		s.emit(s.state.Time, OrbitAchievedEvent, nil, label)
		s.logger.Log("level", "notice", "event", "termination", "outcome", outcome.String(), "time", s.state.Time)
	} else {
		s.logger.Log("level", "critical", "event", "termination", "outcome", outcome.String(), "time", s.state.Time)
	}
}

// emit appends a FlightEvent. Only called internally; callers observe the
// log via Events().
func (s *Simulator) emit(t float64, kind EventKind, stageIndex *int, label string) {
	s.events = append(s.events, FlightEvent{Time: t, Kind: kind, StageIndex: stageIndex, Label: label})
	if kind != Ignition {
		s.logger.Log("level", "info", "event", kind.String(), "time", t, "label", label)
	}
}

// recordSnapshot appends one FlightSnapshot representing the current state.
func (s *Simulator) recordSnapshot() {
	snap := FlightSnapshot{
		Time:             s.state.Time,
		Altitude:         s.state.Altitude,
		Speed:            vec2.Magnitude(s.state.Velocity),
		Mass:             s.state.Mass,
		Fuel:             s.state.Fuel,
		ActiveStageIndex: s.activeStage,
		Throttle:         s.throttle,
		PitchAngleDeg:    s.pitchDeg,
		Position:         s.state.Position,
	}
	if s.state.Altitude > snapshotOrbitThreshold {
		e := orbit.Recover(s.state.Position, s.state.Velocity, s.body.GM(), s.body.Radius)
		snap.OrbitalElements = &e
	}
	s.history = append(s.history, snap)
}

// MaxAltitude returns the highest altitude recorded in the history so far.
func (s *Simulator) MaxAltitude() float64 {
	var max float64
	for _, snap := range s.history {
		if snap.Altitude > max {
			max = snap.Altitude
		}
	}
	return max
}

// GetResult assembles the immutable FlightResult once the flight has
// terminated. Callers
// should check CurrentOutcome().Terminal() first; calling before
// termination returns a result reflecting the flight-so-far with outcome
// Running.
func (s *Simulator) GetResult() FlightResult {
	return FlightResult{
		Outcome:         s.outcome,
		History:         s.History(),
		FinalOrbit:      s.CurrentOrbit(),
		TotalDeltaVUsed: s.totalDeltaVUsed,
		MaxAltitude:     s.MaxAltitude(),
		FlightDuration:  s.state.Time,
	}
}
