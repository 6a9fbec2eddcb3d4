package check

// #region config
// Config holds audit thresholds.
type Config struct {
	// NormTolerance is the allowed deviation of any agent state's L2 norm
	// from 1.
	NormTolerance float64
}

// DefaultConfig returns the standard audit thresholds.
func DefaultConfig() Config {
	return Config{NormTolerance: 1e-9}
}

// #endregion config

// #region result
// Metric is one named audit measurement with pass/fail.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// Result bundles an audit's metrics with the overall verdict.
type Result struct {
	Passed  bool
	Metrics []Metric
	Reason  string
}

// #endregion result
