package ipd

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// constRand returns fixed values: IntN yields min(intn, n-1), Float64 yields f.
type constRand struct {
	intn int
	f    float64
}

func (c constRand) IntN(n int) int {
	if c.intn >= n {
		return n - 1
	}
	return c.intn
}

func (c constRand) Float64() float64 { return c.f }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withGenes returns base with the listed contexts set to a.
func withGenes(base Genome, a Action, contexts ...Context) Genome {
	for _, c := range contexts {
		base[c] = a
	}
	return base
}
