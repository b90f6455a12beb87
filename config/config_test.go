package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
engines:
  E1:
    thrust_sea_level: 2000000
    thrust_vacuum: 2200000
    isp_sea_level: 280
    isp_vacuum: 300
    dry_mass: 500
    throttleable: true
    min_throttle: 0.4
missions:
  leo-hop:
    tier: 1
    budget: 1000000
    requirements:
      target_body: Earth
      max_budget: 1000000
      target_orbit:
        periapsis:
          min: "-inf"
          max: "inf"
        apoapsis:
          min: 100000
          max: "inf"
    bonus_challenges:
      - id: cheap
        description: "Complete under $60M"
        star_value: 1
        cost_threshold: 60000000
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	e1, ok := cat.Engines["E1"]
	if !ok {
		t.Fatalf("expected engine E1 in catalog")
	}
	if e1.ThrustVacuum != 2200000 {
		t.Fatalf("E1 thrust_vacuum = %f, want 2200000", e1.ThrustVacuum)
	}

	mission, ok := cat.Missions["leo-hop"]
	if !ok {
		t.Fatalf("expected mission leo-hop in catalog")
	}
	if mission.Requirements.TargetOrbit == nil {
		t.Fatalf("expected target orbit to be parsed")
	}
	if !math.IsInf(mission.Requirements.TargetOrbit.Periapsis.Min, -1) {
		t.Fatalf("expected periapsis.min to parse as -Inf sentinel")
	}
	if mission.Requirements.TargetOrbit.Apoapsis.Min != 100000 {
		t.Fatalf("apoapsis.min = %f, want 100000", mission.Requirements.TargetOrbit.Apoapsis.Min)
	}
	if len(mission.BonusChallenges) != 1 || mission.BonusChallenges[0].CostThreshold == nil {
		t.Fatalf("expected one bonus with a structured cost threshold")
	}
}

func TestLoadRejectsNegativeDryMass(t *testing.T) {
	bad := `
engines:
  broken:
    dry_mass: -5
`
	path := writeTempConfig(t, bad)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for negative dry mass")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
