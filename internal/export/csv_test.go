package export

import (
	"strings"
	"testing"

	"github.com/sociophysics/normsim/internal/sim"
	"github.com/sociophysics/normsim/internal/smooth"
)

func TestWriteCSV(t *testing.T) {
	h := sim.History{
		{Step: 1, AConforming: 3, ABreaking: 1, BConforming: 2, BBreaking: 2},
		{Step: 2, AConforming: 4, ABreaking: 0, BConforming: 1, BBreaking: 3},
	}

	var b strings.Builder
	if err := WriteCSV(&b, h); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "step,a_conforming,a_breaking,b_conforming,b_breaking" {
		t.Fatalf("bad header: %s", lines[0])
	}
	if lines[1] != "1,3,1,2,2" {
		t.Fatalf("bad row 1: %s", lines[1])
	}
	if lines[2] != "2,4,0,1,3" {
		t.Fatalf("bad row 2: %s", lines[2])
	}
}

func TestWriteCSVEmptyHistory(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.TrimSpace(b.String()) != strings.Join(Header, ",") {
		t.Fatalf("empty history should emit header only, got %q", b.String())
	}
}

func TestWriteSmoothedCSV(t *testing.T) {
	h := sim.History{
		{Step: 1, AConforming: 3, ABreaking: 1, BConforming: 2, BBreaking: 2},
		{Step: 2, AConforming: 5, ABreaking: 3, BConforming: 2, BBreaking: 2},
		{Step: 3, AConforming: 4, ABreaking: 2, BConforming: 2, BBreaking: 2},
	}
	series := smooth.FromHistory(h).Smoothed(3)

	var b strings.Builder
	if err := WriteSmoothedCSV(&b, series); err != nil {
		t.Fatalf("WriteSmoothedCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	// Middle row averages the full window: a_conforming (3+5+4)/3 = 4.
	if !strings.HasPrefix(lines[2], "2,4.0000,2.0000,") {
		t.Fatalf("bad smoothed middle row: %s", lines[2])
	}
}
