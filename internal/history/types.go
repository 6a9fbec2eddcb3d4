package history

import (
	"time"

	"github.com/sociophysics/normsim/internal/sim"
)

// #region run-record
// RunRecord is a stored simulation run: its full parameter set, the seed the
// run actually used, and how many steps it executed. The parameters are
// sufficient to replay the run exactly.
type RunRecord struct {
	RunID     string
	Config    sim.Config
	Steps     int
	CreatedAt time.Time
}

// #endregion run-record
