package logging

import "time"

// #region provenance-entry
// ProvenanceEntry is a single row in the provenance_log table.
type ProvenanceEntry struct {
	RunID       string
	TriggerType string // "simulate" | "replay" | "export"
	ParamsJSON  string
	Outcome     string // "completed" | "aborted" | "diverged"
	Reason      string
	CreatedAt   time.Time
}

// #endregion provenance-entry

// #region run-params
// RunParams captures the exact parameters a run executed with. Serialized as
// JSON into provenance_log.params_json so any archived run can be replayed
// from its provenance row alone.
type RunParams struct {
	Population   int     `json:"population"`
	BiasAConform float64 `json:"bias_a_conform"`
	BiasABreak   float64 `json:"bias_a_break"`
	BiasBConform float64 `json:"bias_b_conform"`
	BiasBBreak   float64 `json:"bias_b_break"`
	StrengthA    float64 `json:"strength_a"`
	StrengthB    float64 `json:"strength_b"`
	Entanglement float64 `json:"entanglement"`
	Seed         int64   `json:"seed"`
	Steps        int     `json:"steps"`
}

// #endregion run-params
