package measure

// #region source
// Source is a seedable deterministic uniform generator (splitmix64 mixer).
// The stream is a pure function of the seed, so a fixed seed reproduces a
// run's full draw sequence bit-for-bit regardless of platform or Go version.
type Source struct {
	state uint64
}

// NewSource creates a Source positioned at the start of the stream for seed.
func NewSource(seed int64) *Source {
	return &Source{state: uint64(seed)}
}

// Float64 returns the next uniform draw in [0, 1].
func (s *Source) Float64() float64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return float64(z^(z>>31)) / float64(1<<64-1)
}

// #endregion source
