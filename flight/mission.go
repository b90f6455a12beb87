package flight

import "github.com/inkorange/mission-control/internal/orbit"

// Requirements describes what a Mission demands of the flight.
// Any bound may be unbounded (±Inf) to mean "no constraint on this side".
type Requirements struct {
	TargetOrbit    *orbit.Target
	TargetBody     string
	MinPayloadMass float64
	MaxBudget      float64
}

// BonusChallenge is an optional stretch objective a Mission offers.
//
// Predicate is evaluated against a finished flight and may itself panic or
// be nil; scoring.EvaluateBonuses recovers from a panicking predicate and
// treats it as failed.
//
// CostThreshold is the structured alternative to string-parsing
// Description for cost-based bonuses; when present it is checked before
// falling back to the regex convention.
type BonusChallenge struct {
	ID            string
	Description   string
	Predicate     func(FlightResult) bool
	StarValue     int
	CostThreshold *CostClause
}

// CostClause is the structured form of a cost-threshold bonus, e.g.
// "complete the mission for no more than this much".
type CostClause struct {
	MaxCost float64
}

// Mission is the frozen mission definition handed to the simulator by the
// mission-select collaborator. Immutable for the entire flight.
type Mission struct {
	ID                string
	Tier              int // 1..5
	Requirements      Requirements
	Budget            float64
	BonusChallenges   []BonusChallenge
	EducationalTopics []string
}
