package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sociophysics/normsim/internal/history"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List archived runs or show one run's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetString("run")
			limit, _ := cmd.Flags().GetInt("limit")

			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}

			store, err := history.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			if runID == "" {
				return listRuns(store, limit)
			}
			return showRun(store, runID)
		},
	}

	cmd.Flags().String("run", "", "Run ID to show in full")
	cmd.Flags().Int("limit", 20, "Maximum runs to list")
	return cmd
}

func listRuns(store *history.Store, limit int) error {
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("archive holds no runs")
		return nil
	}

	fmt.Printf("%-36s | %-5s | %-5s | %-10s | %-20s | %s\n",
		"Run ID", "Pop", "Steps", "Seed", "Strengths (A/B)", "Created")
	for _, r := range runs {
		fmt.Printf("%-36s | %-5d | %-5d | %-10d | %-20s | %s\n",
			r.RunID, r.Config.PopulationSize, r.Steps, r.Config.Seed,
			fmt.Sprintf("%.2f/%.2f", r.Config.StrengthA, r.Config.StrengthB),
			r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func showRun(store *history.Store, runID string) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	recs, err := store.GetHistory(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run %s\n", run.RunID)
	fmt.Printf("  population=%d steps=%d seed=%d\n",
		run.Config.PopulationSize, run.Steps, run.Config.Seed)
	fmt.Printf("  biasA=(%.3f,%.3f) biasB=(%.3f,%.3f)\n",
		run.Config.BiasA[0], run.Config.BiasA[1], run.Config.BiasB[0], run.Config.BiasB[1])
	fmt.Printf("  strengthA=%.3f strengthB=%.3f entanglement=%.3f\n",
		run.Config.StrengthA, run.Config.StrengthB, run.Config.Entanglement)
	fmt.Printf("\n%-6s | %-12s | %-10s | %-12s | %s\n",
		"Step", "A conforming", "A breaking", "B conforming", "B breaking")
	for _, rec := range recs {
		fmt.Printf("%-6d | %-12d | %-10d | %-12d | %d\n",
			rec.Step, rec.AConforming, rec.ABreaking, rec.BConforming, rec.BBreaking)
	}
	return nil
}
