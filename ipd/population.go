package ipd

import "fmt"

// Population is one generation's agents, ordered by ID. A Population is
// never carried into the next generation: Breed returns a new one.
type Population struct {
	Generation int
	Agents     []*Agent
}

// NewPopulation creates generation 0 with random genomes.
func NewPopulation(size int, pCooperate float64, rng Rand) *Population {
	genomes := make([]Genome, size)
	for i := range genomes {
		genomes[i] = NewRandomGenome(rng, pCooperate)
	}
	return PopulationFromGenomes(0, genomes)
}

// PopulationFromGenomes creates fresh agents with IDs 0..len(genomes)-1.
func PopulationFromGenomes(generation int, genomes []Genome) *Population {
	agents := make([]*Agent, len(genomes))
	for i, g := range genomes {
		agents[i] = NewAgent(i, g)
	}
	return &Population{Generation: generation, Agents: agents}
}

// Size returns the number of agents.
func (p *Population) Size() int {
	return len(p.Agents)
}

// IDs returns the agent IDs in population order.
func (p *Population) IDs() []int {
	ids := make([]int, len(p.Agents))
	for i, a := range p.Agents {
		ids[i] = a.ID
	}
	return ids
}

// ResetLogs gives every agent one empty log entry per other agent. It must
// run before the first round of a generation.
func (p *Population) ResetLogs() {
	ids := p.IDs()
	for _, a := range p.Agents {
		a.ResetLog(ids)
	}
}

// PlayRound resolves every unordered pair of distinct agents once and
// returns the number of games played.
func (p *Population) PlayRound() int {
	games := 0
	for i, a1 := range p.Agents {
		for _, a2 := range p.Agents[:i] {
			if err := Play(a1, a2); err != nil {
				// Logs are reset by PlayGeneration; a miss here is a bug.
				panic(fmt.Sprintf("round-robin invariant violated: %v", err))
			}
			games++
		}
	}
	return games
}

// Scores returns each agent's score keyed by agent ID.
func (p *Population) Scores() map[int]int {
	scores := make(map[int]int, len(p.Agents))
	for _, a := range p.Agents {
		scores[a.ID] = a.Score
	}
	return scores
}

// Winner returns the ID of the highest scoring agent. Ties go to the agent
// that comes first in population order, i.e. the lowest ID.
func (p *Population) Winner() int {
	if len(p.Agents) == 0 {
		return -1
	}
	best := p.Agents[0]
	for _, a := range p.Agents[1:] {
		if a.Score > best.Score {
			best = a
		}
	}
	return best.ID
}

// PlayGeneration resets all logs, plays rounds full round-robin rounds and
// returns the final scores along with the winner's ID. Logs accumulate
// across rounds so later decisions see the whole generation's history.
func PlayGeneration(p *Population, rounds int) (map[int]int, int) {
	p.ResetLogs()
	for r := 0; r < rounds; r++ {
		p.PlayRound()
	}
	return p.Scores(), p.Winner()
}
