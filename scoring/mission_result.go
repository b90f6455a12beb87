package scoring

import "github.com/inkorange/mission-control/flight"

// MissionResult is the Scoring-to-Progression persisted record:
// stable, JSON-serializable, forward-compatible via Version.
type MissionResult struct {
	Version          int                 `json:"version"`
	MissionID        string              `json:"mission_id"`
	Stars            int                 `json:"stars"`
	BestScore        int                 `json:"best_score"`
	BestRocketConfig flight.RocketConfig `json:"best_rocket_config"`
	BonusCompleted   []string            `json:"bonus_completed"`
	CompletedAtUnix  int64               `json:"completed_at"`
	FlightResult     flight.FlightResult `json:"flight_result"`
}

// currentMissionResultVersion is bumped whenever MissionResult's schema
// changes in a way old Progression-side readers would need to branch on.
const currentMissionResultVersion = 1

// NewMissionResult assembles a MissionResult from a scored flight. The
// caller supplies completedAtUnix (a Unix timestamp) rather than this
// package calling time.Now itself, keeping Score/NewMissionResult pure.
func NewMissionResult(missionID string, breakdown ScoreBreakdown, rocket flight.RocketConfig, bonusCompleted []string, result flight.FlightResult, completedAtUnix int64) MissionResult {
	return MissionResult{
		Version:          currentMissionResultVersion,
		MissionID:        missionID,
		Stars:            breakdown.Stars,
		BestScore:        breakdown.TotalScore,
		BestRocketConfig: rocket,
		BonusCompleted:   bonusCompleted,
		CompletedAtUnix:  completedAtUnix,
		FlightResult:     result,
	}
}
