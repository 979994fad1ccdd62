package ipd

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds population-wide statistics for one generation.
type Summary struct {
	MeanScore   float64
	StdDevScore float64
	MinScore    float64
	MedianScore float64
	MaxScore    float64

	// MoveCooperation is the fraction of moves played that were Cooperate.
	MoveCooperation float64
	// GenomeCooperation is the mean fraction of Cooperate genes per genome.
	GenomeCooperation float64
}

// Summarize computes the Summary of a played population.
func Summarize(p *Population) Summary {
	var s Summary
	if len(p.Agents) == 0 {
		return s
	}

	scores := make([]float64, len(p.Agents))
	genes := make([]float64, len(p.Agents))
	moves, cooperative := 0, 0
	for i, a := range p.Agents {
		scores[i] = float64(a.Score)
		genes[i] = a.Genome.Cooperation()
		for _, history := range a.log {
			for _, o := range history {
				moves++
				if o == MutualCooperate || o == Sucker {
					cooperative++
				}
			}
		}
	}
	sort.Float64s(scores)

	s.MeanScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.StdDevScore = stat.StdDev(scores, nil)
	}
	s.MinScore = scores[0]
	s.MaxScore = scores[len(scores)-1]
	s.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.GenomeCooperation = stat.Mean(genes, nil)
	if moves > 0 {
		s.MoveCooperation = float64(cooperative) / float64(moves)
	}
	return s
}
