// Command simulate is a headless runner that loads a rocket and mission
// definition, steps the flight simulator on a synthetic clock, and prints
// the event log, an orbit-determination summary, and final score. Useful
// for CI smoke tests and local iteration without the browser UI.
//
// Grounded on the teacher's cmd/mission and cmd/designer binaries: flag
// parsing into package-level vars in init(), viper for file loading,
// straightforward top-to-bottom main() with no framework.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"

	"github.com/inkorange/mission-control/config"
	"github.com/inkorange/mission-control/export"
	"github.com/inkorange/mission-control/flight"
	"github.com/inkorange/mission-control/internal/estimate"
	"github.com/inkorange/mission-control/scoring"
)

var (
	rocketPath  string
	missionID   string
	catalogPath string
	dt          float64
	speed       float64
)

func init() {
	flag.StringVar(&rocketPath, "rocket", "", "path to a rocket config YAML file")
	flag.StringVar(&missionID, "mission", "", "mission id to load from the catalog")
	flag.StringVar(&catalogPath, "catalog", "", "path to the engine/mission catalog YAML file")
	flag.Float64Var(&dt, "dt", flight.FixedDT, "real-time tick size in seconds")
	flag.Float64Var(&speed, "speed", flight.MinTimeScale, "time acceleration factor")
}

func main() {
	flag.Parse()
	if rocketPath == "" || missionID == "" || catalogPath == "" {
		log.Fatal("simulate: -rocket, -mission and -catalog are all required")
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	cat, err := config.Load(catalogPath)
	if err != nil {
		logger.Log("level", "error", "event", "catalog_load_failed", "err", err)
		os.Exit(1)
	}

	mission, ok := cat.Missions[missionID]
	if !ok {
		logger.Log("level", "error", "event", "mission_not_found", "mission", missionID)
		os.Exit(1)
	}

	rocket, err := loadRocket(rocketPath)
	if err != nil {
		logger.Log("level", "error", "event", "rocket_load_failed", "err", err)
		os.Exit(1)
	}

	sim, err := flight.NewSimulator(rocket, mission, cat.Engines, logger)
	if err != nil {
		logger.Log("level", "error", "event", "construction_failed", "err", err)
		os.Exit(1)
	}
	sim.SetTimeScale(speed)
	sim.Start()

	for sim.Running() {
		sim.Tick(dt)
	}

	for _, ev := range sim.Events() {
		logger.Log("level", "info", "event", "flight_event", "detail", ev.String())
	}

	result := sim.GetResult()

	report := orbitHistory(result.History)
	logger.Log(
		"level", "info",
		"event", "orbit_determination",
		"samples", len(report.Points),
		"max_apoapsis", report.MaxApoapsis(),
		"min_periapsis", report.MinPeriapsis(),
		"stabilized", report.Stabilized(10, 1000),
	)

	breakdown := scoring.Score(result, mission, rocket.TotalCost)
	bonuses := scoring.EvaluateBonuses(result, mission, rocket.TotalCost)

	logger.Log(
		"level", "info",
		"event", "flight_complete",
		"outcome", result.Outcome.String(),
		"stars", breakdown.Stars,
		"score", breakdown.TotalScore,
		"bonuses", len(bonuses),
	)

	if err := export.WriteResult(os.Stdout, result); err != nil {
		logger.Log("level", "error", "event", "export_failed", "err", err)
		os.Exit(1)
	}

	if result.Outcome.Failure() {
		os.Exit(1)
	}
	os.Exit(0)
}

// orbitHistory reduces a flight's recorded snapshots to an
// estimate.Report, the same orbit-determination summary shape the
// teacher's estimators produce. It reads snapshot.OrbitalElements
// directly rather than re-deriving them through estimate.Batch: a
// FlightSnapshot only retains position (not velocity), and the simulator
// has already recovered elements for every snapshot above the recording
// threshold, so re-running orbit.Recover here would need data the
// snapshot doesn't carry and would just repeat work already done.
func orbitHistory(history []flight.FlightSnapshot) estimate.Report {
	var points []estimate.SampleElements
	for _, snap := range history {
		if snap.OrbitalElements != nil {
			points = append(points, estimate.SampleElements{Time: snap.Time, Elements: *snap.OrbitalElements})
		}
	}
	return estimate.Report{Points: points}
}

// rawEngineCount/rawStage/rawPayload/rawRocket mirror the YAML shape of a
// rocket config file, analogous to config.rawCatalog but for the vehicle
// definition a driver supplies separately from the shared engine/mission
// catalog.
type rawEngineCount struct {
	EngineID string `mapstructure:"engine_id"`
	Count    int    `mapstructure:"count"`
}

type rawStage struct {
	Engines        []rawEngineCount `mapstructure:"engines"`
	FuelMass       float64          `mapstructure:"fuel_mass"`
	StructuralMass float64          `mapstructure:"structural_mass"`
}

type rawPayload struct {
	Name string  `mapstructure:"name"`
	Mass float64 `mapstructure:"mass"`
}

type rawRocket struct {
	Stages    []rawStage `mapstructure:"stages"`
	Payload   rawPayload `mapstructure:"payload"`
	TotalCost float64    `mapstructure:"total_cost"`
}

func loadRocket(path string) (flight.RocketConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return flight.RocketConfig{}, fmt.Errorf("reading rocket config: %w", err)
	}

	var raw rawRocket
	if err := v.Unmarshal(&raw); err != nil {
		return flight.RocketConfig{}, fmt.Errorf("unmarshaling rocket config: %w", err)
	}

	stages := make([]flight.StageConfig, len(raw.Stages))
	for i, rs := range raw.Stages {
		engines := make([]flight.EngineCount, len(rs.Engines))
		for j, re := range rs.Engines {
			engines[j] = flight.EngineCount{EngineID: re.EngineID, Count: re.Count}
		}
		stages[i] = flight.StageConfig{
			Engines:        engines,
			FuelMass:       rs.FuelMass,
			StructuralMass: rs.StructuralMass,
		}
	}

	return flight.RocketConfig{
		Stages:    stages,
		Payload:   flight.Payload{Name: raw.Payload.Name, Mass: raw.Payload.Mass},
		TotalCost: raw.TotalCost,
	}, nil
}
