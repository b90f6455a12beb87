package flight

import "github.com/inkorange/mission-control/internal/orbit"

// FlightResult is the pure, immutable record produced exactly once after
// termination. It is the sole input (alongside Mission and a
// cost) to the scoring module.
type FlightResult struct {
	Outcome         Outcome          `json:"outcome"`
	History         []FlightSnapshot `json:"history"`
	FinalOrbit      *orbit.Elements  `json:"final_orbit"`
	TotalDeltaVUsed float64          `json:"total_delta_v_used"`
	MaxAltitude     float64          `json:"max_altitude"`
	FlightDuration  float64          `json:"flight_duration"`
}
