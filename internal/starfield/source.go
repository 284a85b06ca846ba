package starfield

import (
	"math/rand/v2"
	"time"
)

// Source draws uniform values in [lo, hi). Implementations are owned by a
// single Field and need not be safe for concurrent use.
type Source interface {
	Between(lo, hi float32) float32
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(lo, hi float32) float32

func (f SourceFunc) Between(lo, hi float32) float32 { return f(lo, hi) }

type pcgSource struct {
	r *rand.Rand
}

// NewSource returns a seeded PCG source. A zero seed picks one from the clock.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s pcgSource) Between(lo, hi float32) float32 {
	return lo + s.r.Float32()*(hi-lo)
}
