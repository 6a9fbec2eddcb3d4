package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sociophysics/normsim/internal/history"
	"github.com/sociophysics/normsim/internal/logging"
	"github.com/sociophysics/normsim/internal/replay"
	"github.com/sociophysics/normsim/internal/sim"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run a fixture or archived run and verify bit-for-bit determinism",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixturePath, _ := cmd.Flags().GetString("fixture")
			dbPath, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetString("run")

			if (fixturePath == "") == (dbPath == "") {
				return fmt.Errorf("exactly one of --fixture or --db is required")
			}

			if fixturePath != "" {
				return replayFixture(fixturePath)
			}
			return replayArchived(dbPath, runID)
		},
	}

	cmd.Flags().String("fixture", "", "Replay fixture JSON path")
	cmd.Flags().String("run", "", "Archived run ID (defaults to the most recent run)")
	return cmd
}

func replayFixture(path string) error {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return err
	}
	results, summary, err := replay.Run(f)
	if err != nil {
		return fmt.Errorf("replay fixture: %w", err)
	}
	printComparison(results, summary)
	if !summary.Deterministic() {
		return fmt.Errorf("replay diverged on %d of %d steps", summary.Diverged, summary.TotalSteps)
	}
	return nil
}

func replayArchived(dbPath, runID string) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	run, err := resolveRun(store, runID)
	if err != nil {
		return err
	}
	expected, err := store.GetHistory(run.RunID)
	if err != nil {
		return err
	}

	results, summary, err := replay.Compare(run.Config, run.Steps, expected)
	if err != nil {
		return fmt.Errorf("replay run %s: %w", run.RunID, err)
	}
	printComparison(results, summary)

	outcome := "completed"
	reason := "replay matched archived history"
	if !summary.Deterministic() {
		outcome = "diverged"
		reason = fmt.Sprintf("%d of %d steps diverged", summary.Diverged, summary.TotalSteps)
	}
	err = logging.LogRun(store.DB(), logging.ProvenanceEntry{
		RunID:       run.RunID,
		TriggerType: "replay",
		Outcome:     outcome,
		Reason:      reason,
	})
	if err != nil {
		log.Printf("provenance logging: %v", err)
	}

	if !summary.Deterministic() {
		return fmt.Errorf("replay of run %s diverged on %d of %d steps",
			run.RunID, summary.Diverged, summary.TotalSteps)
	}
	return nil
}

// printComparison outputs a per-step comparison table.
func printComparison(results []replay.StepResult, summary replay.Summary) {
	fmt.Printf("%-6s| %-24s| %-24s| %s\n", "Step", "Expected (Ac/Ab/Bc/Bb)", "Replayed (Ac/Ab/Bc/Bb)", "Match")
	fmt.Printf("%-6s+%-25s+%-25s+%s\n", "------", "-------------------------", "-------------------------", "------")
	for _, r := range results {
		match := "DIFF"
		if r.Match {
			match = "OK"
		}
		fmt.Printf("%-6d| %-24s| %-24s| %s\n",
			r.Step, formatCounts(r.Expected), formatCounts(r.Got), match)
	}
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n",
		summary.TotalSteps, summary.Matches, summary.Diverged)
}

func formatCounts(rec sim.StepRecord) string {
	return fmt.Sprintf("%d/%d/%d/%d",
		rec.AConforming, rec.ABreaking, rec.BConforming, rec.BBreaking)
}
