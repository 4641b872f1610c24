package engine

import "math/rand"

// Source supplies the randomness for scoring formulas. Isolating it lets
// tests pin deterministic draws while production uses a uniform generator.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }

// NewSource returns the production randomness source.
func NewSource() Source { return defaultSource{} }

// FixedSource always returns the same value. FixedSource(0.5) pins every
// uniform draw to the midpoint of its range.
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) }

// uniform draws from U(lo, hi).
func uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
