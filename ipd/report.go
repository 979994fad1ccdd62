package ipd

import "sort"

// AgentScore is one row of the scores report.
type AgentScore struct {
	AgentID int
	Score   int
}

// GenomeRecord is one agent's strategy table.
type GenomeRecord struct {
	AgentID int
	Genome  Genome
}

// InteractionRecord is the chronological outcome sequence one agent recorded
// against one opponent.
type InteractionRecord struct {
	AgentID    int
	OpponentID int
	Outcomes   []Outcome
}

// GenerationReport is the snapshot handed to reporters once a generation has
// finished playing. It shares no memory with the population it came from.
type GenerationReport struct {
	Generation   int
	Rounds       int
	Scores       []AgentScore // ordered by agent ID
	WinnerID     int
	Genomes      []GenomeRecord
	Interactions []InteractionRecord // every ordered pair, by agent then opponent
	Summary      Summary
}

// NewReport builds a GenerationReport from a played population.
func NewReport(p *Population, rounds, winnerID int) *GenerationReport {
	r := &GenerationReport{
		Generation: p.Generation,
		Rounds:     rounds,
		WinnerID:   winnerID,
	}

	agents := make([]*Agent, len(p.Agents))
	copy(agents, p.Agents)
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })

	for _, a := range agents {
		r.Scores = append(r.Scores, AgentScore{AgentID: a.ID, Score: a.Score})
		r.Genomes = append(r.Genomes, GenomeRecord{AgentID: a.ID, Genome: a.Genome})
	}
	for _, a := range agents {
		for _, opp := range agents {
			if opp.ID == a.ID {
				continue
			}
			outcomes, ok := a.History(opp.ID)
			if !ok {
				continue
			}
			r.Interactions = append(r.Interactions, InteractionRecord{
				AgentID:    a.ID,
				OpponentID: opp.ID,
				Outcomes:   outcomes,
			})
		}
	}
	r.Summary = Summarize(p)
	return r
}

// ScoreMap returns the scores keyed by agent ID.
func (r *GenerationReport) ScoreMap() map[int]int {
	m := make(map[int]int, len(r.Scores))
	for _, s := range r.Scores {
		m[s.AgentID] = s.Score
	}
	return m
}

// WinnerScore returns the score of the generation's winner.
func (r *GenerationReport) WinnerScore() int {
	for _, s := range r.Scores {
		if s.AgentID == r.WinnerID {
			return s.Score
		}
	}
	return 0
}
