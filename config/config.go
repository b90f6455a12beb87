// Package config loads rocket-engine catalogs and mission catalogs from
// YAML documents via spf13/viper, the same configuration
// library smd uses for its SMD_CONFIG settings in config.go.
// Physics constants are never exposed here — only catalog data, since
// making mu/g0 configurable would break flight determinism
// from one identical run to the next.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/inkorange/mission-control/flight"
	"github.com/inkorange/mission-control/internal/orbit"
)

// LoadError reports a caller-misuse condition found while loading or
// validating a catalog: an unreadable or malformed YAML file, a negative
// engine dry mass, an out-of-range min_throttle, or a malformed orbit-target
// bound. Raised before any Mission value is handed back to the caller.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Catalog is the set of EngineDefs and Mission definitions a driver loads
// from disk before constructing a flight.
type Catalog struct {
	Engines  map[string]flight.EngineDef
	Missions map[string]flight.Mission
}

// rawEngine/rawMission mirror the YAML shape viper unmarshals into before
// conversion to the frozen flight types.
type rawEngine struct {
	ThrustSeaLevel float64 `mapstructure:"thrust_sea_level"`
	ThrustVacuum   float64 `mapstructure:"thrust_vacuum"`
	IspSeaLevel    float64 `mapstructure:"isp_sea_level"`
	IspVacuum      float64 `mapstructure:"isp_vacuum"`
	DryMass        float64 `mapstructure:"dry_mass"`
	Throttleable   bool    `mapstructure:"throttleable"`
	MinThrottle    float64 `mapstructure:"min_throttle"`
	Restartable    bool    `mapstructure:"restartable"`
}

type rawBound struct {
	Min interface{} `mapstructure:"min"`
	Max interface{} `mapstructure:"max"`
}

type rawTargetOrbit struct {
	Periapsis rawBound `mapstructure:"periapsis"`
	Apoapsis  rawBound `mapstructure:"apoapsis"`
}

type rawRequirements struct {
	TargetOrbit    *rawTargetOrbit `mapstructure:"target_orbit"`
	TargetBody     string          `mapstructure:"target_body"`
	MinPayloadMass float64         `mapstructure:"min_payload_mass"`
	MaxBudget      float64         `mapstructure:"max_budget"`
}

type rawBonus struct {
	ID            string  `mapstructure:"id"`
	Description   string  `mapstructure:"description"`
	StarValue     int     `mapstructure:"star_value"`
	CostThreshold float64 `mapstructure:"cost_threshold"`
}

type rawMission struct {
	Tier              int             `mapstructure:"tier"`
	Budget            float64         `mapstructure:"budget"`
	Requirements      rawRequirements `mapstructure:"requirements"`
	BonusChallenges   []rawBonus      `mapstructure:"bonus_challenges"`
	EducationalTopics []string        `mapstructure:"educational_topics"`
}

type rawCatalog struct {
	Engines  map[string]rawEngine  `mapstructure:"engines"`
	Missions map[string]rawMission `mapstructure:"missions"`
}

// Load reads path (YAML) into a Catalog. Missions in this catalog carry no
// embedded vehicle/stage template, so there is no engine id to cross-check
// here: engine ids only become meaningful once paired with a RocketConfig,
// which a builder assembles separately and flight.NewSimulator validates
// against this same Engines map at construction time. Load itself
// validates only what the catalog is self-contained enough to check: no
// negative masses, no out-of-range throttle limits.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ROCKETSIM")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, &LoadError{Path: path, Reason: "failed to read config file", Err: err}
	}

	var raw rawCatalog
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &LoadError{Path: path, Reason: "failed to unmarshal config", Err: err}
	}

	cat := &Catalog{
		Engines:  make(map[string]flight.EngineDef, len(raw.Engines)),
		Missions: make(map[string]flight.Mission, len(raw.Missions)),
	}

	for id, re := range raw.Engines {
		if re.DryMass < 0 {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("engine %q has negative dry mass", id)}
		}
		if re.MinThrottle < 0 || re.MinThrottle > 1 {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("engine %q has out-of-range min_throttle", id)}
		}
		cat.Engines[id] = flight.EngineDef{
			ID:             id,
			ThrustSeaLevel: re.ThrustSeaLevel,
			ThrustVacuum:   re.ThrustVacuum,
			IspSeaLevel:    re.IspSeaLevel,
			IspVacuum:      re.IspVacuum,
			DryMass:        re.DryMass,
			Throttleable:   re.Throttleable,
			MinThrottle:    re.MinThrottle,
			Restartable:    re.Restartable,
		}
	}

	for id, rm := range raw.Missions {
		mission, err := convertMission(id, rm)
		if err != nil {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("mission %q", id), Err: err}
		}
		cat.Missions[id] = mission
	}

	return cat, nil
}

// MustLoad is Load but panics on error, for CLI/test bootstrapping where a
// missing or broken catalog file is an unrecoverable setup mistake.
func MustLoad(path string) *Catalog {
	cat, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cat
}

func convertMission(id string, rm rawMission) (flight.Mission, error) {
	req := flight.Requirements{
		TargetBody:     rm.Requirements.TargetBody,
		MinPayloadMass: rm.Requirements.MinPayloadMass,
		MaxBudget:      rm.Requirements.MaxBudget,
	}
	if rm.Requirements.TargetOrbit != nil {
		peri, err := convertBound(rm.Requirements.TargetOrbit.Periapsis)
		if err != nil {
			return flight.Mission{}, fmt.Errorf("periapsis bound: %w", err)
		}
		apo, err := convertBound(rm.Requirements.TargetOrbit.Apoapsis)
		if err != nil {
			return flight.Mission{}, fmt.Errorf("apoapsis bound: %w", err)
		}
		target := orbit.Target{Periapsis: peri, Apoapsis: apo}
		req.TargetOrbit = &target
	}

	bonuses := make([]flight.BonusChallenge, 0, len(rm.BonusChallenges))
	for _, rb := range rm.BonusChallenges {
		bc := flight.BonusChallenge{
			ID:          rb.ID,
			Description: rb.Description,
			StarValue:   rb.StarValue,
		}
		if rb.CostThreshold > 0 {
			bc.CostThreshold = &flight.CostClause{MaxCost: rb.CostThreshold}
		}
		bonuses = append(bonuses, bc)
	}

	return flight.Mission{
		ID:                id,
		Tier:              rm.Tier,
		Requirements:      req,
		Budget:            rm.Budget,
		BonusChallenges:   bonuses,
		EducationalTopics: rm.EducationalTopics,
	}, nil
}

// convertBound parses a {min,max} pair where either side may be a YAML
// sentinel string ("inf", "+inf", "-inf", case-insensitive) standing in
// for an unbounded limit, since YAML has no literal infinity.
func convertBound(rb rawBound) (orbit.Bound, error) {
	min, err := sentinelOrFloat(rb.Min, math.Inf(-1))
	if err != nil {
		return orbit.Bound{}, err
	}
	max, err := sentinelOrFloat(rb.Max, math.Inf(1))
	if err != nil {
		return orbit.Bound{}, err
	}
	return orbit.Bound{Min: min, Max: max}, nil
}

func sentinelOrFloat(v interface{}, unbounded float64) (float64, error) {
	switch val := v.(type) {
	case nil:
		return unbounded, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		switch s {
		case "inf", "+inf", "infinity":
			return math.Inf(1), nil
		case "-inf", "-infinity":
			return math.Inf(-1), nil
		default:
			return 0, fmt.Errorf("unrecognized bound sentinel %q", val)
		}
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("unsupported bound value type %T", v)
	}
}
