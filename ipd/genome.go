package ipd

import (
	"fmt"
	"strings"
)

// Rand is the source of randomness used for initialisation, crossover and mutation.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Genome is an agent's complete strategy table: one Action for every Context.
// It is a value type; copying a Genome copies the whole table.
type Genome [NumContexts]Action

// NewRandomGenome returns a genome whose genes are independently Cooperate
// with probability pCooperate and Defect otherwise.
func NewRandomGenome(rng Rand, pCooperate float64) Genome {
	var g Genome
	for i := range g {
		if rng.Float64() < pCooperate {
			g[i] = Cooperate
		} else {
			g[i] = Defect
		}
	}
	return g
}

// UniformGenome returns a genome that plays a in every context.
func UniformGenome(a Action) Genome {
	var g Genome
	for i := range g {
		g[i] = a
	}
	return g
}

// ParseGenome parses the 67-character C/D form produced by Genome.String.
func ParseGenome(s string) (Genome, error) {
	var g Genome
	if len(s) != NumContexts {
		return g, fmt.Errorf("genome must have %d genes, got %d", NumContexts, len(s))
	}
	for i := 0; i < NumContexts; i++ {
		a, err := ParseAction(s[i : i+1])
		if err != nil {
			return g, fmt.Errorf("gene %d: %w", i, err)
		}
		g[i] = a
	}
	return g, nil
}

// Action returns the gene for context c.
func (g Genome) Action(c Context) Action {
	return g[c]
}

// String returns the genome as 67 C/D characters in context order.
func (g Genome) String() string {
	var b strings.Builder
	b.Grow(NumContexts)
	for _, a := range g {
		b.WriteString(a.String())
	}
	return b.String()
}

// Cooperation returns the fraction of genes that are Cooperate.
func (g Genome) Cooperation() float64 {
	n := 0
	for _, a := range g {
		if a == Cooperate {
			n++
		}
	}
	return float64(n) / NumContexts
}

// Cross produces n offspring from two parents. For every offspring the three
// bootstrap genes are copied as one block from a parent chosen uniformly at
// random, each of the 64 history genes is taken from either parent with equal
// probability, and every gene is then flipped with probability mutationRate.
func Cross(parentA, parentB *Genome, n int, mutationRate float64, rng Rand) []Genome {
	offspring := make([]Genome, 0, n)
	for k := 0; k < n; k++ {
		child := crossover(parentA, parentB, rng)
		child.Mutate(mutationRate, rng)
		offspring = append(offspring, child)
	}
	return offspring
}

func crossover(parentA, parentB *Genome, rng Rand) Genome {
	primary, secondary := parentA, parentB
	if rng.IntN(2) == 1 {
		primary, secondary = parentB, parentA
	}

	var child Genome
	copy(child[:NumBootstrap], primary[:NumBootstrap])
	for i := NumBootstrap; i < NumContexts; i++ {
		if rng.IntN(2) == 0 {
			child[i] = primary[i]
		} else {
			child[i] = secondary[i]
		}
	}
	return child
}

// Mutate flips each gene independently with probability rate.
func (g *Genome) Mutate(rate float64, rng Rand) {
	for i := range g {
		if rng.Float64() < rate {
			g[i] = g[i].Flip()
		}
	}
}
