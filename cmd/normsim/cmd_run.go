package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sociophysics/normsim/internal/check"
	"github.com/sociophysics/normsim/internal/config"
	"github.com/sociophysics/normsim/internal/export"
	"github.com/sociophysics/normsim/internal/history"
	"github.com/sociophysics/normsim/internal/logging"
	"github.com/sociophysics/normsim/internal/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and optionally archive/export the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			steps, _ := cmd.Flags().GetInt("steps")
			seed, _ := cmd.Flags().GetInt64("seed")
			csvPath, _ := cmd.Flags().GetString("csv")
			dbPath, _ := cmd.Flags().GetString("db")

			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if steps > 0 {
				cfg.Steps = steps
			}
			if seed != 0 {
				cfg.Seed = seed
			}
			cfg.ResolveSeed()
			simCfg := cfg.SimConfig()

			sm, err := sim.NewSimulator(simCfg)
			if err != nil {
				return fmt.Errorf("construct simulator: %w", err)
			}
			if err := sm.Run(cfg.Steps); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			recs := sm.History()

			// Post-run invariant audit. Failures are reported, not fatal: the
			// history is still archived for inspection.
			harness := check.NewHarness(check.DefaultConfig())
			groupA, groupB := sm.Snapshot()
			if res := harness.AuditStates(groupA, groupB); !res.Passed {
				log.Printf("state audit: %s", res.Reason)
			}
			if res := harness.AuditHistory(recs, simCfg.PopulationSize); !res.Passed {
				log.Printf("history audit: %s", res.Reason)
			}

			if dbPath != "" {
				runID, err := archiveRun(dbPath, simCfg, recs, cfg.Steps)
				if err != nil {
					return err
				}
				fmt.Printf("archived run %s\n", runID)
			}

			if csvPath != "" {
				if err := export.WriteFile(csvPath, recs); err != nil {
					return fmt.Errorf("export csv: %w", err)
				}
				fmt.Printf("wrote %s\n", csvPath)
			}

			fmt.Printf("seed=%d steps=%d population=%d\n", simCfg.Seed, cfg.Steps, simCfg.PopulationSize)
			if len(recs) > 0 {
				last := recs[len(recs)-1]
				fmt.Printf("final step: A %d conforming / %d breaking, B %d conforming / %d breaking\n",
					last.AConforming, last.ABreaking, last.BConforming, last.BBreaking)
			}
			return nil
		},
	}

	cmd.Flags().String("config", "", "YAML run config path (defaults used when omitted)")
	cmd.Flags().Int("steps", 0, "Override step count")
	cmd.Flags().Int64("seed", 0, "Override random seed")
	cmd.Flags().String("csv", "", "Write history CSV to this path")
	return cmd
}

// archiveRun stores the run and its provenance row.
func archiveRun(dbPath string, simCfg sim.Config, recs sim.History, steps int) (string, error) {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	rec, err := store.SaveRun(simCfg, recs)
	if err != nil {
		return "", fmt.Errorf("archive run: %w", err)
	}

	paramsJSON, _ := json.Marshal(logging.RunParams{
		Population:   simCfg.PopulationSize,
		BiasAConform: simCfg.BiasA[0],
		BiasABreak:   simCfg.BiasA[1],
		BiasBConform: simCfg.BiasB[0],
		BiasBBreak:   simCfg.BiasB[1],
		StrengthA:    simCfg.StrengthA,
		StrengthB:    simCfg.StrengthB,
		Entanglement: simCfg.Entanglement,
		Seed:         simCfg.Seed,
		Steps:        steps,
	})
	err = logging.LogRun(store.DB(), logging.ProvenanceEntry{
		RunID:       rec.RunID,
		TriggerType: "simulate",
		ParamsJSON:  string(paramsJSON),
		Outcome:     "completed",
		Reason:      "fixed step count reached",
	})
	if err != nil {
		log.Printf("provenance logging: %v", err)
	}
	return rec.RunID, nil
}
