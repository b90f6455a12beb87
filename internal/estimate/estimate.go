// Package estimate builds a post-hoc orbital-elements report from a
// recorded trajectory. It is not a filter: there is no measurement noise
// to estimate away in this deterministic core, so unlike smd's
// estimate.go (OrbitEstimate, backed by gokalman/ode/mat64 state-transition
// matrices) this package only ever looks at exact recorded samples and
// reduces them to a summary a CLI or test can print or assert against.
package estimate

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/inkorange/mission-control/internal/orbit"
	"github.com/inkorange/mission-control/internal/vec2"
)

// Sample is one recorded position/velocity pair to reduce to orbital
// elements.
type Sample struct {
	Time     float64
	Position vec2.V
	Velocity vec2.V
}

// SampleElements pairs a sample's timestamp with its recovered elements.
type SampleElements struct {
	Time     float64
	Elements orbit.Elements
}

// Report is the batch reduction of a trajectory's samples into orbital
// elements at each point, plus the extremes across the whole run.
type Report struct {
	Points []SampleElements
}

// Builder accumulates samples and produces a Report, logging a summary
// line as it goes the way smd's estimators log propagation progress.
type Builder struct {
	mu, bodyRadius float64
	logger         kitlog.Logger
	points         []SampleElements
}

// NewBuilder constructs a Builder for a body with the given gravitational
// parameter and surface radius. A nil logger is treated as a no-op sink.
func NewBuilder(mu, bodyRadius float64, logger kitlog.Logger) *Builder {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Builder{mu: mu, bodyRadius: bodyRadius, logger: logger}
}

// Add reduces one sample to its orbital elements and appends it to the
// report under construction.
func (b *Builder) Add(s Sample) {
	el := orbit.Recover(s.Position, s.Velocity, b.mu, b.bodyRadius)
	b.points = append(b.points, SampleElements{Time: s.Time, Elements: el})
	level.Debug(b.logger).Log(
		"event", "orbit_sample",
		"time", s.Time,
		"semi_major_axis", el.SemiMajorAxis,
		"eccentricity", el.Eccentricity,
	)
}

// Report returns the accumulated samples reduced into a Report. The
// Builder may continue to accept Add calls afterward.
func (b *Builder) Report() Report {
	out := make([]SampleElements, len(b.points))
	copy(out, b.points)
	return Report{Points: out}
}

// Batch is a one-shot convenience wrapper over Builder for callers that
// already have the full sample slice in hand.
func Batch(samples []Sample, mu, bodyRadius float64) Report {
	b := NewBuilder(mu, bodyRadius, nil)
	for _, s := range samples {
		b.Add(s)
	}
	return b.Report()
}

// MaxApoapsis returns the highest finite apoapsis recorded across the
// report, or 0 if there are no points.
func (r Report) MaxApoapsis() float64 {
	max := 0.0
	found := false
	for _, p := range r.Points {
		if math.IsInf(p.Elements.Apoapsis, 0) {
			continue
		}
		if !found || p.Elements.Apoapsis > max {
			max = p.Elements.Apoapsis
			found = true
		}
	}
	return max
}

// MinPeriapsis returns the lowest periapsis recorded across the report,
// or 0 if there are no points.
func (r Report) MinPeriapsis() float64 {
	min := 0.0
	found := false
	for _, p := range r.Points {
		if !found || p.Elements.Periapsis < min {
			min = p.Elements.Periapsis
			found = true
		}
	}
	return min
}

// Stabilized reports whether the trailing window of samples agree on
// semi-major axis within tolerance, a cheap proxy for "the orbit has
// settled" useful in tests that drive a simulator to steady state.
func (r Report) Stabilized(window int, tolerance float64) bool {
	if window <= 0 || len(r.Points) < window {
		return false
	}
	tail := r.Points[len(r.Points)-window:]
	first := tail[0].Elements.SemiMajorAxis
	for _, p := range tail[1:] {
		if math.Abs(p.Elements.SemiMajorAxis-first) > tolerance {
			return false
		}
	}
	return true
}
