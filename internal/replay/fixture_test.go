package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sociophysics/normsim/internal/sim"
)

func writeFixture(t *testing.T, f Fixture) string {
	t.Helper()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadFixtureRoundTrip(t *testing.T) {
	cfg := sim.Config{
		PopulationSize: 4,
		BiasA:          [2]float64{0.6, 0.4},
		BiasB:          [2]float64{0.4, 0.6},
		StrengthA:      0.9,
		StrengthB:      0.9,
		Entanglement:   0.1,
		Seed:           7,
	}
	history, err := sim.Simulate(cfg, 6)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	path := writeFixture(t, Fixture{
		Description: "round-trip",
		Config: FixtureConfig{
			Population:   cfg.PopulationSize,
			BiasA:        cfg.BiasA,
			BiasB:        cfg.BiasB,
			StrengthA:    cfg.StrengthA,
			StrengthB:    cfg.StrengthB,
			Entanglement: cfg.Entanglement,
			Seed:         cfg.Seed,
		},
		Steps:    6,
		Expected: FromHistory(history),
	})

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if f.Config.ToSimConfig() != cfg {
		t.Fatalf("config round-trip mismatch: %+v", f.Config.ToSimConfig())
	}

	_, summary, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Deterministic() {
		t.Fatalf("fixture built from a live run must replay cleanly, %d diverged", summary.Diverged)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFixtureBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected parse error")
	}
}
