// Package scoring implements a deterministic three-axis scoring function:
// an optimal-delta-v estimator, efficiency/budget/accuracy scores, star
// rating, and bonus-challenge resolution.
//
// Grounded on smd's estimate.go, which evaluates a finished
// propagation against expected performance as a pure post-hoc function —
// the same shape this package's Score function takes, minus the Kalman
// filter machinery estimate.go needs for noisy tracking data (this core
// has no measurement noise to estimate against, see DESIGN.md).
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/inkorange/mission-control/flight"
	"github.com/inkorange/mission-control/internal/env"
	"github.com/inkorange/mission-control/internal/orbit"
)

// tolerance is tau, the accuracy-score formula's distance scale.
const tolerance = 10000.0

// leoReferenceDeltaV is the LEO-insertion delta-v reference (m/s) used
// as a floor for orbital missions.
const leoReferenceDeltaV = 9400.0

// leoBandAltitude is the altitude (m) below which a target orbit is
// considered already inside the LEO band, so no Hohmann transfer on top
// of the reference insertion cost is charged.
const leoBandAltitude = 2000000.0

// parkingOrbitAltitude is the assumed parking-orbit altitude (m) the
// Hohmann leg to higher targets is computed from.
const parkingOrbitAltitude = 200000.0

// EfficiencyScore is the 0-100 efficiency axis plus its supporting figures.
type EfficiencyScore struct {
	Score      int     `json:"score"`
	DvUsed     float64 `json:"dv_used"`
	DvOptimal  float64 `json:"dv_optimal"`
	FuelWasted float64 `json:"fuel_wasted"`
}

type BudgetScore struct {
	Score              int     `json:"score"`
	CostSpent          float64 `json:"cost_spent"`
	BudgetMax          float64 `json:"budget_max"`
	PercentUnderBudget float64 `json:"percent_under_budget"`
}

type AccuracyScore struct {
	Score            int     `json:"score"`
	OrbitalDeviation float64 `json:"orbital_deviation"`
	InclinationError float64 `json:"inclination_error"` // always 0 in this 2D-equatorial core
}

// ScoreBreakdown is the pure output of Score.
type ScoreBreakdown struct {
	Efficiency EfficiencyScore `json:"efficiency"`
	Budget     BudgetScore     `json:"budget"`
	Accuracy   AccuracyScore   `json:"accuracy"`
	TotalScore int             `json:"total_score"`
	Stars      int             `json:"stars"`
}

// Score evaluates a finished FlightResult against a Mission and a realized
// rocket cost, producing a ScoreBreakdown whose fields are always finite —
// never NaN or infinite, even on a degenerate failed flight.
func Score(result flight.FlightResult, mission flight.Mission, rocketCost float64) ScoreBreakdown {
	eff := efficiencyScore(result, mission)
	bud := budgetScore(rocketCost, mission.Budget)
	acc := accuracyScore(result, mission)

	total := int(math.Round(float64(eff.Score+bud.Score+acc.Score) / 3))
	stars := starsFor(total)
	if result.Outcome.ScoringPenalty() {
		stars = 0
	}

	return ScoreBreakdown{
		Efficiency: eff,
		Budget:     bud,
		Accuracy:   acc,
		TotalScore: total,
		Stars:      stars,
	}
}

func starsFor(total int) int {
	switch {
	case total >= 80:
		return 3
	case total >= 60:
		return 2
	case total >= 40:
		return 1
	default:
		return 0
	}
}

// OptimalDeltaV estimates the delta-v an ideal flight of this mission
// would spend. Central body is always Earth in this core.
func OptimalDeltaV(mission flight.Mission) float64 {
	target := mission.Requirements.TargetOrbit
	if target == nil {
		return 0
	}
	if target.Suborbital() {
		hTarget := target.Apoapsis.Min
		return math.Sqrt(2*env.G0*hTarget) * 1.15
	}

	mu := env.Earth.GM()
	targetRadius := env.Earth.Radius + targetMeanAltitude(*target)
	if targetRadius-env.Earth.Radius <= leoBandAltitude {
		return leoReferenceDeltaV
	}
	parkingRadius := env.Earth.Radius + parkingOrbitAltitude
	h := orbit.Hohmann(mu, parkingRadius, targetRadius)
	return leoReferenceDeltaV + h.Total
}

// targetMeanAltitude returns the mean of the target's periapsis and
// apoapsis midpoint altitudes. An unbounded side of a bound falls back
// to its finite side.
func targetMeanAltitude(t orbit.Target) float64 {
	return (boundMid(t.Periapsis) + boundMid(t.Apoapsis)) / 2
}

func boundMid(b orbit.Bound) float64 {
	if math.IsInf(b.Min, -1) {
		return b.Max
	}
	if math.IsInf(b.Max, 1) {
		return b.Min
	}
	return (b.Min + b.Max) / 2
}

func efficiencyScore(result flight.FlightResult, mission flight.Mission) EfficiencyScore {
	optimal := OptimalDeltaV(mission)
	used := result.TotalDeltaVUsed
	denom := math.Max(optimal, used)
	var ratio float64
	if denom > 0 {
		ratio = optimal / denom
	} else {
		ratio = 1
	}
	score := int(math.Round(clamp(ratio*100, 0, 100)))
	return EfficiencyScore{
		Score:      score,
		DvUsed:     used,
		DvOptimal:  optimal,
		FuelWasted: math.Max(0, used-optimal),
	}
}

func budgetScore(cost, budgetMax float64) BudgetScore {
	var ratio float64
	if budgetMax > 0 {
		ratio = 1 - cost/budgetMax
	}
	score := int(math.Round(clamp(ratio*100+50, 0, 100)))
	return BudgetScore{
		Score:              score,
		CostSpent:          cost,
		BudgetMax:          budgetMax,
		PercentUnderBudget: math.Max(0, ratio*100),
	}
}

func accuracyScore(result flight.FlightResult, mission flight.Mission) AccuracyScore {
	target := mission.Requirements.TargetOrbit
	var score int
	var deviation float64

	switch {
	case target != nil && result.FinalOrbit != nil:
		if target.Suborbital() {
			apoRatio := math.Min(1, result.MaxAltitude/target.Apoapsis.Min)
			score = int(math.Round(apoRatio * 100))
			deviation = math.Abs(target.Apoapsis.Min - result.MaxAltitude)
		} else {
			periMid := boundMid(target.Periapsis)
			apoMid := boundMid(target.Apoapsis)
			periErr := math.Abs(result.FinalOrbit.Periapsis - periMid)
			apoErr := math.Abs(result.FinalOrbit.Apoapsis - apoMid)
			avg := (periErr + apoErr) / 2
			errorRatio := 1 - math.Min(1, avg/(10*tolerance))
			score = int(math.Round(clamp(errorRatio*100, 0, 100)))
			deviation = avg
		}
	case result.Outcome == flight.OrbitAchieved || result.Outcome == flight.MissionComplete:
		score = 75
	default:
		score = 0
	}

	if result.Outcome.ScoringPenalty() {
		score = int(math.Min(float64(score), 10))
	}

	return AccuracyScore{
		Score:            score,
		OrbitalDeviation: deviation,
		InclinationError: 0,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// costRegexp matches a cost-threshold convention for bonus challenges
// described only in prose, e.g. "Complete under $60M".
var costRegexp = regexp.MustCompile(`(?i)\$([\d,]+)\s*([MBK]?)`)

// EvaluateBonuses resolves which of the mission's bonus challenges are
// satisfied by result. Bonuses are only awarded on success outcomes
// (OrbitAchieved or MissionComplete), and a panicking predicate is treated
// as failed.
func EvaluateBonuses(result flight.FlightResult, mission flight.Mission, rocketCost float64) []string {
	if result.Outcome != flight.OrbitAchieved && result.Outcome != flight.MissionComplete {
		return nil
	}
	var satisfied []string
	for _, b := range mission.BonusChallenges {
		if bonusSatisfied(b, result, rocketCost) {
			satisfied = append(satisfied, b.ID)
		}
	}
	return satisfied
}

func bonusSatisfied(b flight.BonusChallenge, result flight.FlightResult, rocketCost float64) bool {
	if predicatePasses(b, result) {
		return true
	}
	if b.CostThreshold != nil {
		return rocketCost <= b.CostThreshold.MaxCost
	}
	if maxCost, ok := parseCostFromDescription(b.Description); ok {
		return rocketCost <= maxCost
	}
	return false
}

// predicatePasses evaluates b.Predicate, recovering from any panic and
// treating it as a failed predicate.
func predicatePasses(b flight.BonusChallenge, result flight.FlightResult) (ok bool) {
	if b.Predicate == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return b.Predicate(result)
}

// parseCostFromDescription is a deliberate legacy fallback, kept for
// catalog entries that never got a structured CostThreshold.
func parseCostFromDescription(description string) (float64, bool) {
	m := costRegexp.FindStringSubmatch(description)
	if m == nil {
		return 0, false
	}
	numStr := strings.ReplaceAll(m[1], ",", "")
	val, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		val *= 1e3
	case "M":
		val *= 1e6
	case "B":
		val *= 1e9
	}
	return val, true
}
