package flight

import "fmt"

// EngineDef describes one engine model, frozen once constructed.
// The builder collaborator owns the catalog of these; the simulator only
// ever resolves ids it's handed.
type EngineDef struct {
	ID             string  `json:"id"`
	ThrustSeaLevel float64 `json:"thrust_sea_level"` // N
	ThrustVacuum   float64 `json:"thrust_vacuum"`    // N
	IspSeaLevel    float64 `json:"isp_sea_level"`    // s
	IspVacuum      float64 `json:"isp_vacuum"`       // s
	DryMass        float64 `json:"dry_mass"`         // kg
	Throttleable   bool    `json:"throttleable"`
	MinThrottle    float64 `json:"min_throttle"` // in [0,1]
	Restartable    bool    `json:"restartable"`
}

// EngineCount pairs an engine definition reference with how many of that
// engine are mounted on a stage.
type EngineCount struct {
	EngineID string `json:"engine_id"`
	Count    int    `json:"count"`
}

// StageConfig is a single frozen stage definition. Engines are
// referenced by id and resolved against a supplied EngineDef catalog at
// simulator construction.
type StageConfig struct {
	Engines        []EngineCount `json:"engines"`
	FuelMass       float64       `json:"fuel_mass"`       // kg, initial load
	StructuralMass float64       `json:"structural_mass"` // kg, tanks + adapters + fairings
}

// WetMass returns fuel + structural + engine dry masses for this stage,
// resolving engine ids against the provided catalog.
func (s StageConfig) WetMass(catalog map[string]EngineDef) float64 {
	mass := s.FuelMass + s.StructuralMass
	for _, ec := range s.Engines {
		mass += catalog[ec.EngineID].DryMass * float64(ec.Count)
	}
	return mass
}

// DryMass returns the stage's mass with all fuel spent.
func (s StageConfig) DryMass(catalog map[string]EngineDef) float64 {
	mass := s.StructuralMass
	for _, ec := range s.Engines {
		mass += catalog[ec.EngineID].DryMass * float64(ec.Count)
	}
	return mass
}

// Payload is the fixed cargo the rocket carries above all stages.
type Payload struct {
	Name string  `json:"name"`
	Mass float64 `json:"mass"` // kg
}

// RocketConfig is the frozen, ordered multi-stage vehicle definition
// handed to the simulator by the builder collaborator. Stage
// 0 is the bottom stage, ignited first.
type RocketConfig struct {
	Stages    []StageConfig `json:"stages"`
	Payload   Payload       `json:"payload"`
	TotalCost float64       `json:"total_cost"`
}

// TotalMass returns the rocket's wet mass (all stages + payload), given an
// engine catalog to resolve dry masses.
func (r RocketConfig) TotalMass(catalog map[string]EngineDef) float64 {
	total := r.Payload.Mass
	for _, s := range r.Stages {
		total += s.WetMass(catalog)
	}
	return total
}

// TotalDryMass returns the rocket's mass with every stage's fuel spent.
func (r RocketConfig) TotalDryMass(catalog map[string]EngineDef) float64 {
	total := r.Payload.Mass
	for _, s := range r.Stages {
		total += s.DryMass(catalog)
	}
	return total
}

// ConfigError reports a caller-misuse condition detected while validating a
// RocketConfig against an engine catalog. The
// simulator must not start when this is returned.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid rocket config: %s", e.Reason)
}

// Validate checks every engine id resolves, no stage has zero wet mass
// with non-empty engines, and no component carries a negative mass. This
// is the simulator-construction-time gate; callers must not proceed to
// NewSimulator on error.
func (r RocketConfig) Validate(catalog map[string]EngineDef) error {
	if len(r.Stages) == 0 {
		return &ConfigError{Reason: "rocket has no stages"}
	}
	if r.Payload.Mass < 0 {
		return &ConfigError{Reason: "payload mass is negative"}
	}
	for i, s := range r.Stages {
		if s.FuelMass < 0 || s.StructuralMass < 0 {
			return &ConfigError{Reason: fmt.Sprintf("stage %d has a negative mass", i)}
		}
		if len(s.Engines) == 0 {
			return &ConfigError{Reason: fmt.Sprintf("stage %d has no engines", i)}
		}
		for _, ec := range s.Engines {
			def, ok := catalog[ec.EngineID]
			if !ok {
				return &ConfigError{Reason: fmt.Sprintf("stage %d references unknown engine id %q", i, ec.EngineID)}
			}
			if ec.Count <= 0 {
				return &ConfigError{Reason: fmt.Sprintf("stage %d has non-positive engine count for %q", i, ec.EngineID)}
			}
			if def.MinThrottle < 0 || def.MinThrottle > 1 {
				return &ConfigError{Reason: fmt.Sprintf("engine %q has out-of-range min throttle", ec.EngineID)}
			}
		}
		if s.WetMass(catalog) <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("stage %d has zero or negative wet mass", i)}
		}
	}
	return nil
}
