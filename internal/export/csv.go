package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sociophysics/normsim/internal/sim"
	"github.com/sociophysics/normsim/internal/smooth"
)

// #region history-csv
// Header is the column layout consumed by downstream chart tooling: one row
// per step, step index first, then the four outcome counts.
var Header = []string{"step", "a_conforming", "a_breaking", "b_conforming", "b_breaking"}

// WriteCSV serializes a history, one row per step.
func WriteCSV(w io.Writer, h sim.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range h {
		row := []string{
			strconv.Itoa(rec.Step),
			strconv.Itoa(rec.AConforming),
			strconv.Itoa(rec.ABreaking),
			strconv.Itoa(rec.BConforming),
			strconv.Itoa(rec.BBreaking),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write step %d: %w", rec.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile serializes a history to a CSV file.
func WriteFile(path string, h sim.History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, h); err != nil {
		return err
	}
	return f.Close()
}

// #endregion history-csv

// #region smoothed-csv
// WriteSmoothedCSV serializes a filtered series with the same column layout;
// counts become fractional after averaging.
func WriteSmoothedCSV(w io.Writer, s smooth.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range s.Steps {
		row := []string{
			strconv.Itoa(s.Steps[i]),
			formatCount(s.AConforming[i]),
			formatCount(s.ABreaking[i]),
			formatCount(s.BConforming[i]),
			formatCount(s.BBreaking[i]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write step %d: %w", s.Steps[i], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// #endregion smoothed-csv
