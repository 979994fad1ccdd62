package ipd

import (
	"fmt"
	"sort"
)

// Mating records one breeding event for lineage reporting.
type Mating struct {
	Quartile  int
	ParentA   int // agent ID of the partner at position p-1 (wrapped)
	ParentB   int // agent ID at position p
	Offspring []int
}

// Reproduction breeds the next generation from a scored population.
type Reproduction struct {
	Config       *ReproductionConfig
	MutationRate float64
	Rand         Rand

	// Matings holds the events of the most recent Breed call.
	Matings []Mating
}

// NewReproduction creates a breeding engine.
func NewReproduction(config *ReproductionConfig, mutationRate float64, rng Rand) *Reproduction {
	return &Reproduction{
		Config:       config,
		MutationRate: mutationRate,
		Rand:         rng,
	}
}

// RankByScore returns the agents sorted by descending score. Agents with
// equal scores keep their population order.
func RankByScore(agents []*Agent) []*Agent {
	ranked := make([]*Agent, len(agents))
	copy(ranked, agents)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Quartiles splits a ranked slice into four contiguous bands of equal size.
func Quartiles(ranked []*Agent) ([4][]*Agent, error) {
	var q [4][]*Agent
	n := len(ranked)
	if n == 0 || n%4 != 0 {
		return q, fmt.Errorf("%w: population size must be a positive multiple of 4, got %d", ErrConfig, n)
	}
	size := n / 4
	for i := range q {
		q[i] = ranked[i*size : (i+1)*size]
	}
	return q, nil
}

// matePosition returns the partner index for position p in a quartile of the
// given size: p-1, with position 0 wrapping to the last member.
func matePosition(p, size int) int {
	return (p - 1 + size) % size
}

// Breed ranks the population, splits it into quartiles and mates each member
// of a quartile with its higher-ranked neighbour, the top member pairing with
// the quartile's last. Each mating yields the quartile's quota of offspring.
// Offspring are collected position by position, quartile by quartile, and
// become agents 0..N-1 of the next generation.
func (r *Reproduction) Breed(p *Population) (*Population, error) {
	quartiles, err := Quartiles(RankByScore(p.Agents))
	if err != nil {
		return nil, err
	}
	if r.Config == nil {
		return nil, fmt.Errorf("%w: reproduction config is required", ErrConfig)
	}
	quotas := r.Config.QuartileQuotas
	if len(quotas) != len(quartiles) {
		return nil, fmt.Errorf("%w: need %d quartile quotas, got %d", ErrConfig, len(quartiles), len(quotas))
	}

	size := len(quartiles[0])
	genomes := make([]Genome, 0, p.Size())
	r.Matings = r.Matings[:0]

	for pos := 0; pos < size; pos++ {
		for qi, band := range quartiles {
			n := quotas[qi]
			if n == 0 {
				continue
			}
			a := band[matePosition(pos, size)]
			b := band[pos]
			m := Mating{Quartile: qi, ParentA: a.ID, ParentB: b.ID}
			for _, child := range Cross(&a.Genome, &b.Genome, n, r.MutationRate, r.Rand) {
				m.Offspring = append(m.Offspring, len(genomes))
				genomes = append(genomes, child)
			}
			r.Matings = append(r.Matings, m)
		}
	}

	return PopulationFromGenomes(p.Generation+1, genomes), nil
}

// Breed is a convenience wrapper around Reproduction.Breed.
func Breed(p *Population, config *ReproductionConfig, mutationRate float64, rng Rand) (*Population, error) {
	return NewReproduction(config, mutationRate, rng).Breed(p)
}
