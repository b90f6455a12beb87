// Package propulsion implements the rocket-equation math: Tsiolkovsky
// delta-v, multi-stage delta-v with upper-stage payload accumulation,
// mass flow rate, thrust-to-weight ratio and burn time.
//
// Every function here is a pure, division-by-zero-safe scalar computation,
// grounded on smd's EPThruster/ControlLaw math in dynamics/thrusters.go
// and prop.go generalized from specific-impulse electric-propulsion
// models to the chemical multi-stage case this core needs.
package propulsion

import (
	"math"

	"github.com/inkorange/mission-control/internal/env"
)

// DeltaV returns the Tsiolkovsky rocket-equation delta-v for a burn from
// wet mass to dry mass at the given specific impulse (seconds). Returns 0
// when dryMass <= 0 or wetMass <= dryMass rather than a negative or
// undefined log.
func DeltaV(ispSeconds, wetMass, dryMass float64) float64 {
	if dryMass <= 0 || wetMass <= dryMass {
		return 0
	}
	return ispSeconds * env.G0 * math.Log(wetMass/dryMass)
}

// Stage is the minimal per-stage shape the multi-stage delta-v estimator
// needs: its own wet/dry mass (excluding anything above it) and its
// specific impulse.
type Stage struct {
	WetMass float64
	DryMass float64
	Isp     float64
}

// MultiStageDeltaV sums the delta-v contributed by each stage, bottom to
// top: the payload "above" stage i is the sum of the wet masses of every
// stage above it plus the fixed payload mass. Stage 0 is the bottom
// (ignited first), matching RocketConfig's ordering.
func MultiStageDeltaV(stages []Stage, payloadMass float64) float64 {
	var total float64
	for i := 0; i < len(stages); i++ {
		payloadAbove := payloadMass
		for j := i + 1; j < len(stages); j++ {
			payloadAbove += stages[j].WetMass
		}
		s := stages[i]
		total += DeltaV(s.Isp, s.WetMass+payloadAbove, s.DryMass+payloadAbove)
	}
	return total
}

// MassFlowRate returns mdot = F / (Isp * g0). Returns 0 when ispSeconds <= 0.
func MassFlowRate(thrustNewtons, ispSeconds float64) float64 {
	if ispSeconds <= 0 {
		return 0
	}
	return thrustNewtons / (ispSeconds * env.G0)
}

// ThrustToWeight returns F / (m * gLocal). Returns 0 when mass <= 0.
func ThrustToWeight(thrustNewtons, mass, gLocal float64) float64 {
	if mass <= 0 {
		return 0
	}
	return thrustNewtons / (mass * gLocal)
}

// BurnTime returns fuelMass / mdot. Returns 0 when mdot <= 0.
func BurnTime(fuelMass, mdot float64) float64 {
	if mdot <= 0 {
		return 0
	}
	return fuelMass / mdot
}
