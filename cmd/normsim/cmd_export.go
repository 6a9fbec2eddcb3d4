package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sociophysics/normsim/internal/export"
	"github.com/sociophysics/normsim/internal/history"
	"github.com/sociophysics/normsim/internal/replay"
	"github.com/sociophysics/normsim/internal/sim"
	"github.com/sociophysics/normsim/internal/smooth"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an archived run as CSV or a replay fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetString("run")
			outPath, _ := cmd.Flags().GetString("out")
			window, _ := cmd.Flags().GetInt("smooth")
			asFixture, _ := cmd.Flags().GetBool("fixture")

			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			store, err := history.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			run, err := resolveRun(store, runID)
			if err != nil {
				return err
			}
			recs, err := store.GetHistory(run.RunID)
			if err != nil {
				return err
			}

			if asFixture {
				return writeFixture(outPath, run, recs, len(recs))
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()

			if window > 1 {
				err = export.WriteSmoothedCSV(f, smooth.FromHistory(recs).Smoothed(window))
			} else {
				err = export.WriteCSV(f, recs)
			}
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Printf("exported run %s (%d steps) to %s\n", run.RunID, len(recs), outPath)
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run ID (defaults to the most recent run)")
	cmd.Flags().String("out", "", "Output path")
	cmd.Flags().Int("smooth", 0, "Moving-average window for smoothed CSV output")
	cmd.Flags().Bool("fixture", false, "Write a replay fixture JSON instead of CSV")
	return cmd
}

// resolveRun looks up the named run, or the most recent one when id is
// empty.
func resolveRun(store *history.Store, id string) (history.RunRecord, error) {
	if id != "" {
		return store.GetRun(id)
	}
	runs, err := store.ListRuns(1)
	if err != nil {
		return history.RunRecord{}, err
	}
	if len(runs) == 0 {
		return history.RunRecord{}, fmt.Errorf("archive holds no runs")
	}
	return runs[0], nil
}

func writeFixture(path string, run history.RunRecord, recs sim.History, steps int) error {
	f := replay.Fixture{
		Description: fmt.Sprintf("archived run %s", run.RunID),
		Config: replay.FixtureConfig{
			Population:   run.Config.PopulationSize,
			BiasA:        run.Config.BiasA,
			BiasB:        run.Config.BiasB,
			StrengthA:    run.Config.StrengthA,
			StrengthB:    run.Config.StrengthB,
			Entanglement: run.Config.Entanglement,
			Seed:         run.Config.Seed,
		},
		Steps:    steps,
		Expected: replay.FromHistory(recs),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}
