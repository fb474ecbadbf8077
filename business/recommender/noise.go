package recommender

import (
	"math/rand"
	"sync"
	"time"
)

// NoiseSource yields values in [0, 1). It drives the exploration term and the
// choice of search insight template.
type NoiseSource interface {
	Float64() float64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a goroutine-safe NoiseSource. A zero seed uses the clock.
func NewRandSource(seed int64) NoiseSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// FixedNoise always returns the same value; useful for reproducible rankings.
type FixedNoise float64

func (f FixedNoise) Float64() float64 { return float64(f) }

// unit clamps a noise sample into [0, 1).
func unit(n NoiseSource) float64 {
	v := n.Float64()
	switch {
	case v < 0:
		return 0
	case v >= 1:
		return 0.999999
	default:
		return v
	}
}
