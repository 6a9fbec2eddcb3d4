package history

import (
	"path/filepath"
	"testing"

	"github.com/sociophysics/normsim/internal/sim"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "normsim.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(t *testing.T) (sim.Config, sim.History) {
	t.Helper()
	cfg := sim.Config{
		PopulationSize: 10,
		BiasA:          [2]float64{0.6, 0.4},
		BiasB:          [2]float64{0.4, 0.6},
		StrengthA:      0.8,
		StrengthB:      0.75,
		Entanglement:   0.05,
		Seed:           42,
	}
	h, err := sim.Simulate(cfg, 8)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return cfg, h
}

func TestSaveAndGetRun(t *testing.T) {
	store := testStore(t)
	cfg, h := testRun(t)

	rec, err := store.SaveRun(cfg, h)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if rec.RunID == "" {
		t.Fatal("empty run ID")
	}
	if rec.Steps != 8 {
		t.Fatalf("steps = %d, want 8", rec.Steps)
	}

	got, err := store.GetRun(rec.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Config != cfg {
		t.Fatalf("round-tripped config %+v, want %+v", got.Config, cfg)
	}
}

func TestGetHistoryRoundTrip(t *testing.T) {
	store := testStore(t)
	cfg, h := testRun(t)

	rec, err := store.SaveRun(cfg, h)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetHistory(rec.RunID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(got) != len(h) {
		t.Fatalf("length %d, want %d", len(got), len(h))
	}
	for i := range h {
		if got[i] != h[i] {
			t.Fatalf("step %d: %+v != %+v", i+1, got[i], h[i])
		}
	}
}

func TestListRunsOrdering(t *testing.T) {
	store := testStore(t)
	cfg, h := testRun(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveRun(cfg, h); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	runs, err = store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns limit: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit ignored, got %d runs", len(runs))
	}
}

func TestGetRunMissing(t *testing.T) {
	store := testStore(t)
	if _, err := store.GetRun("no-such-run"); err == nil {
		t.Fatal("expected error for missing run")
	}
}
