// Package export serializes FlightResult, ScoreBreakdown and MissionResult
// values to JSON for persistence and transmission, plus an optional CSV
// snapshot dump for offline plotting/debugging.
//
// Grounded on smd's export.go (ExportConfig, StreamStates), scaled
// down from smd's buffered-channel streaming writer (needed there because
// propagation runs on its own goroutine) to a direct io.Writer call, since
// this core's Simulator is driven synchronously from one goroutine.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/inkorange/mission-control/flight"
	"github.com/inkorange/mission-control/scoring"
)

// WriteResult serializes a FlightResult as indented JSON to w.
func WriteResult(w io.Writer, result flight.FlightResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteScoreBreakdown serializes a ScoreBreakdown as indented JSON to w.
func WriteScoreBreakdown(w io.Writer, breakdown scoring.ScoreBreakdown) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(breakdown)
}

// WriteMissionResult serializes a MissionResult as indented JSON to w,
// the record a progression system persists after a scored flight.
func WriteMissionResult(w io.Writer, mr scoring.MissionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mr)
}

// WriteSnapshotsCSV writes history as a CSV table for offline
// plotting/debugging. Not required by any UI collaborator, but present
// because smd always ships a plain-text export path
// alongside its JSON/Cosmographia writers.
func WriteSnapshotsCSV(w io.Writer, history []flight.FlightSnapshot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time", "altitude", "speed", "mass", "fuel", "active_stage", "throttle", "pitch_deg", "pos_x", "pos_y"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing csv header: %w", err)
	}
	for _, snap := range history {
		row := []string{
			strconv.FormatFloat(snap.Time, 'f', -1, 64),
			strconv.FormatFloat(snap.Altitude, 'f', -1, 64),
			strconv.FormatFloat(snap.Speed, 'f', -1, 64),
			strconv.FormatFloat(snap.Mass, 'f', -1, 64),
			strconv.FormatFloat(snap.Fuel, 'f', -1, 64),
			strconv.Itoa(snap.ActiveStageIndex),
			strconv.FormatFloat(snap.Throttle, 'f', -1, 64),
			strconv.FormatFloat(snap.PitchAngleDeg, 'f', -1, 64),
			strconv.FormatFloat(snap.Position.X, 'f', -1, 64),
			strconv.FormatFloat(snap.Position.Y, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing csv row: %w", err)
		}
	}
	return nil
}
