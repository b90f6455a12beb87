package flight

import "github.com/inkorange/mission-control/internal/propulsion"

// StageRuntime is the mutable projection of one StageConfig,
// derived once at simulator construction and mutated only by the
// simulator thereafter.
type StageRuntime struct {
	Engines             []EngineCount
	FuelRemaining       float64
	FuelMass            float64 // initial load, for the [0, FuelMass] invariant
	DryMass             float64
	TotalThrustVacuum   float64
	TotalThrustSeaLevel float64
	IspVacuum           float64 // thrust-weighted average
	IspSeaLevel         float64 // thrust-weighted average
	MassFlowRate        float64 // kg/s at vacuum reference
}

// newStageRuntime derives a StageRuntime from a frozen StageConfig and
// engine catalog.
func newStageRuntime(cfg StageConfig, catalog map[string]EngineDef) StageRuntime {
	var thrustVac, thrustSL, ispVacWeighted, ispSLWeighted float64
	for _, ec := range cfg.Engines {
		def := catalog[ec.EngineID]
		n := float64(ec.Count)
		thrustVac += def.ThrustVacuum * n
		thrustSL += def.ThrustSeaLevel * n
		ispVacWeighted += def.IspVacuum * def.ThrustVacuum * n
		ispSLWeighted += def.IspSeaLevel * def.ThrustSeaLevel * n
	}
	var ispVac, ispSL float64
	if thrustVac > 0 {
		ispVac = ispVacWeighted / thrustVac
	}
	if thrustSL > 0 {
		ispSL = ispSLWeighted / thrustSL
	}
	return StageRuntime{
		Engines:             cfg.Engines,
		FuelRemaining:       cfg.FuelMass,
		FuelMass:            cfg.FuelMass,
		DryMass:             cfg.DryMass(catalog),
		TotalThrustVacuum:   thrustVac,
		TotalThrustSeaLevel: thrustSL,
		IspVacuum:           ispVac,
		IspSeaLevel:         ispSL,
		MassFlowRate:        propulsion.MassFlowRate(thrustVac, ispVac),
	}
}

// primaryEngine returns the catalog definition of this stage's first
// engine, which governs throttle clamping. Stages
// are validated to have at least one engine at construction.
func (s StageRuntime) primaryEngine(catalog map[string]EngineDef) EngineDef {
	return catalog[s.Engines[0].EngineID]
}
