package flight

import (
	"math"
	"testing"

	kitlog "github.com/go-kit/kit/log"
)

func testCatalog() map[string]EngineDef {
	return map[string]EngineDef{
		"E1": {
			ID:             "E1",
			ThrustSeaLevel: 2.0e6,
			ThrustVacuum:   2.2e6,
			IspSeaLevel:    280,
			IspVacuum:      300,
			DryMass:        500,
			Throttleable:   true,
			MinThrottle:    0.4,
		},
		"E2": {
			ID:           "E2",
			ThrustVacuum: 4.0e5,
			IspVacuum:    340,
			DryMass:      150,
			Throttleable: false,
		},
	}
}

func testRocket() RocketConfig {
	return RocketConfig{
		Stages: []StageConfig{
			{Engines: []EngineCount{{EngineID: "E1", Count: 1}}, FuelMass: 20000, StructuralMass: 2000},
			{Engines: []EngineCount{{EngineID: "E2", Count: 1}}, FuelMass: 1500, StructuralMass: 300},
		},
		Payload:   Payload{Name: "sat", Mass: 500},
		TotalCost: 5000000,
	}
}

func TestNewSimulatorRejectsUnknownEngine(t *testing.T) {
	rocket := testRocket()
	rocket.Stages[0].Engines[0].EngineID = "nope"
	_, err := NewSimulator(rocket, Mission{}, testCatalog(), nil)
	if err == nil {
		t.Fatalf("expected ConfigError for unknown engine id")
	}
}

func TestNewSimulatorInitialState(t *testing.T) {
	sim, err := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := sim.CurrentState()
	if st.Altitude != 0 {
		t.Fatalf("initial altitude = %f, want 0", st.Altitude)
	}
	if sim.Running() {
		t.Fatalf("simulator should not be running before Start")
	}
	if len(sim.Events()) != 1 || sim.Events()[0].Kind != Ignition {
		t.Fatalf("expected a single Ignition event at construction, got %v", sim.Events())
	}
	if len(sim.History()) != 1 {
		t.Fatalf("expected one initial snapshot, got %d", len(sim.History()))
	}
}

func TestAbortStopsSimulatorPermanently(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.Start()
	sim.Abort()
	if sim.Running() {
		t.Fatalf("expected Running() false after Abort")
	}
	if sim.CurrentOutcome() != Aborted {
		t.Fatalf("expected Aborted outcome, got %v", sim.CurrentOutcome())
	}
	before := sim.CurrentState()
	sim.Tick(0.1)
	after := sim.CurrentState()
	if before != after {
		t.Fatalf("tick after abort should be a no-op, state changed: %+v -> %+v", before, after)
	}
}

func TestSetThrottleClamping(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.SetThrottle(-5)
	if sim.throttle != 0.4 {
		t.Fatalf("throttle = %f, want clamp to min throttle 0.4", sim.throttle)
	}
	sim.SetThrottle(5)
	if sim.throttle != 1 {
		t.Fatalf("throttle = %f, want clamp to 1", sim.throttle)
	}
	sim.SetThrottle(math.NaN())
	if sim.throttle != 0 {
		t.Fatalf("NaN throttle should snap to 0, got %f", sim.throttle)
	}
}

func TestSetThrottleNonThrottleableSnaps(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.TriggerStageSeparation() // move to stage 1, engine E2 is not throttleable
	sim.SetThrottle(0.3)
	if sim.throttle != 1 {
		t.Fatalf("non-throttleable positive-but-low input should snap to 1, got %f", sim.throttle)
	}
	sim.SetThrottle(0.9)
	if sim.throttle != 1 {
		t.Fatalf("non-throttleable positive input should snap to 1, got %f", sim.throttle)
	}
}

func TestSetPitchClamping(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.SetPitch(-10)
	if sim.pitchDeg != 0 {
		t.Fatalf("pitch = %f, want 0", sim.pitchDeg)
	}
	sim.SetPitch(120)
	if sim.pitchDeg != 90 {
		t.Fatalf("pitch = %f, want 90", sim.pitchDeg)
	}
}

func TestSetTimeScaleClamping(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.SetTimeScale(0)
	if sim.timeScale != MinTimeScale {
		t.Fatalf("zero time scale should snap to MinTimeScale, got %f", sim.timeScale)
	}
	sim.SetTimeScale(1000)
	if sim.timeScale != MaxTimeScale {
		t.Fatalf("time scale = %f, want clamp to MaxTimeScale", sim.timeScale)
	}
}

func TestTriggerStageSeparationMassAccounting(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	before := sim.CurrentState().Mass
	discardedStage := sim.stages[0]
	sim.TriggerStageSeparation()
	after := sim.CurrentState().Mass
	want := before - (discardedStage.DryMass + discardedStage.FuelRemaining)
	if math.Abs(after-want) > 1e-6 {
		t.Fatalf("mass after separation = %f, want %f", after, want)
	}
	if sim.ActiveStageIndex() != 1 {
		t.Fatalf("active stage = %d, want 1", sim.ActiveStageIndex())
	}
	// No-op when no upper stage remains.
	sim.TriggerStageSeparation()
	if sim.ActiveStageIndex() != 1 {
		t.Fatalf("separating past the last stage should be a no-op")
	}
}

func TestTickFuelConsumptionAndMonotonicSnapshots(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.Start()
	sim.SetThrottle(1.0)

	initialFuel := sim.stages[0].FuelRemaining
	lastTime := -1.0
	for i := 0; i < 50 && sim.Running(); i++ {
		sim.Tick(0.1)
		hist := sim.History()
		last := hist[len(hist)-1]
		if last.Time < lastTime {
			t.Fatalf("snapshot time went backwards: %f -> %f", lastTime, last.Time)
		}
		lastTime = last.Time
	}
	events := sim.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Time < events[i-1].Time {
			t.Fatalf("event timestamps not non-decreasing at %d: %f -> %f", i, events[i-1].Time, events[i].Time)
		}
	}
	if sim.stages[0].FuelRemaining >= initialFuel && sim.ActiveStageIndex() == 0 {
		t.Fatalf("expected fuel to be consumed while burning on stage 0")
	}
	for _, snap := range sim.History() {
		if math.IsNaN(snap.Position.X) || math.IsNaN(snap.Position.Y) || math.IsNaN(snap.Speed) {
			t.Fatalf("NaN propagated into snapshot: %+v", snap)
		}
	}
}

func TestLoggerIsANoOpDependency(t *testing.T) {
	run := func(logger kitlog.Logger) FlightResult {
		sim, err := NewSimulator(testRocket(), Mission{}, testCatalog(), logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sim.Start()
		sim.SetThrottle(1.0)
		for i := 0; i < 40 && sim.Running(); i++ {
			sim.Tick(0.1)
		}
		return sim.GetResult()
	}

	withNil := run(nil)
	withNop := run(kitlog.NewNopLogger())

	if len(withNil.History) != len(withNop.History) {
		t.Fatalf("history length diverged: %d vs %d", len(withNil.History), len(withNop.History))
	}
	for i := range withNil.History {
		a, b := withNil.History[i], withNop.History[i]
		if a.Time != b.Time || a.Position != b.Position || a.Mass != b.Mass || a.Fuel != b.Fuel {
			t.Fatalf("snapshot %d diverged between nil and no-op logger: %+v vs %+v", i, a, b)
		}
	}
	if withNil.Outcome != withNop.Outcome {
		t.Fatalf("outcome diverged: %v vs %v", withNil.Outcome, withNop.Outcome)
	}
}

func TestMaxAltitudeMatchesHistory(t *testing.T) {
	sim, _ := NewSimulator(testRocket(), Mission{}, testCatalog(), nil)
	sim.Start()
	sim.SetThrottle(1.0)
	for i := 0; i < 30 && sim.Running(); i++ {
		sim.Tick(0.1)
	}
	want := 0.0
	for _, snap := range sim.History() {
		if snap.Altitude > want {
			want = snap.Altitude
		}
	}
	result := sim.GetResult()
	if result.MaxAltitude != want {
		t.Fatalf("MaxAltitude = %f, want %f", result.MaxAltitude, want)
	}
}
