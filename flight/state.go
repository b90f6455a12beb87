package flight

import (
	"github.com/inkorange/mission-control/internal/orbit"
	"github.com/inkorange/mission-control/internal/vec2"
)

// SimState is the simulator's live, mutable state. Overwritten
// every micro-step; never retained by callers (they read it via
// Simulator.CurrentState, which returns a value copy).
type SimState struct {
	Position vec2.V  `json:"position"`
	Velocity vec2.V  `json:"velocity"`
	Mass     float64 `json:"mass"`     // kg, total wet including all remaining stages + payload
	Time     float64 `json:"time"`     // s since ignition
	Altitude float64 `json:"altitude"` // m above surface, cached = |position| - R_body
	Fuel     float64 `json:"fuel"`     // kg in the currently active stage
}

// FlightSnapshot is an append-only recorded sample of flight state.
// OrbitalElements is nil below the recording threshold (altitude <=
// 50,000 m, where they're too noisy to be meaningful).
type FlightSnapshot struct {
	Time             float64         `json:"time"`
	Altitude         float64         `json:"altitude"`
	Speed            float64         `json:"speed"`
	Mass             float64         `json:"mass"`
	Fuel             float64         `json:"fuel"`
	ActiveStageIndex int             `json:"active_stage_index"`
	Throttle         float64         `json:"throttle"`
	PitchAngleDeg    float64         `json:"pitch_angle_deg"`
	Position         vec2.V          `json:"position"`
	OrbitalElements  *orbit.Elements `json:"orbital_elements,omitempty"`
}

// snapshotOrbitThreshold is the altitude above which a snapshot carries
// OrbitalElements.
const snapshotOrbitThreshold = 50000.0
