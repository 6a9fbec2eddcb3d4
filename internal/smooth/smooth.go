package smooth

import (
	"github.com/sociophysics/normsim/internal/sim"
)

// #region series
// Series holds the four outcome-count series of a history as parallel
// float64 slices, ready for filtering.
type Series struct {
	Steps       []int
	AConforming []float64
	ABreaking   []float64
	BConforming []float64
	BBreaking   []float64
}

// FromHistory extracts the count series from a history.
func FromHistory(h sim.History) Series {
	s := Series{
		Steps:       make([]int, len(h)),
		AConforming: make([]float64, len(h)),
		ABreaking:   make([]float64, len(h)),
		BConforming: make([]float64, len(h)),
		BBreaking:   make([]float64, len(h)),
	}
	for i, rec := range h {
		s.Steps[i] = rec.Step
		s.AConforming[i] = float64(rec.AConforming)
		s.ABreaking[i] = float64(rec.ABreaking)
		s.BConforming[i] = float64(rec.BConforming)
		s.BBreaking[i] = float64(rec.BBreaking)
	}
	return s
}

// #endregion series

// #region moving-average
// MovingAverage applies a centered window filter. At the edges the window
// shrinks to the available samples, so output length equals input length and
// constant series pass through unchanged. A window < 2 returns a copy.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 2 {
		copy(out, values)
		return out
	}
	half := window / 2
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(values)-1 {
			hi = len(values) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Smoothed returns a new Series with every count series filtered by a
// centered moving average of the given window.
func (s Series) Smoothed(window int) Series {
	steps := make([]int, len(s.Steps))
	copy(steps, s.Steps)
	return Series{
		Steps:       steps,
		AConforming: MovingAverage(s.AConforming, window),
		ABreaking:   MovingAverage(s.ABreaking, window),
		BConforming: MovingAverage(s.BConforming, window),
		BBreaking:   MovingAverage(s.BBreaking, window),
	}
}

// #endregion moving-average
