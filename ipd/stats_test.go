package ipd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func alternatingPopulation() *Population {
	return PopulationFromGenomes(0, []Genome{
		UniformGenome(Cooperate),
		UniformGenome(Defect),
		UniformGenome(Cooperate),
		UniformGenome(Defect),
	})
}

func TestSummarize(t *testing.T) {
	p := alternatingPopulation()
	PlayGeneration(p, 1)
	s := Summarize(p)

	// Scores are 3, 11, 3, 11.
	assert.InDelta(t, 7.0, s.MeanScore, 1e-9)
	assert.InDelta(t, math.Sqrt(64.0/3.0), s.StdDevScore, 1e-9)
	assert.InDelta(t, 3.0, s.MinScore, 1e-9)
	assert.InDelta(t, 3.0, s.MedianScore, 1e-9)
	assert.InDelta(t, 11.0, s.MaxScore, 1e-9)
	assert.InDelta(t, 0.5, s.MoveCooperation, 1e-9)
	assert.InDelta(t, 0.5, s.GenomeCooperation, 1e-9)
}

func TestSummarizeEdgeCases(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(&Population{}))

	single := PopulationFromGenomes(0, []Genome{UniformGenome(Cooperate)})
	single.Agents[0].Score = 5
	s := Summarize(single)
	assert.Zero(t, s.StdDevScore)
	assert.Zero(t, s.MoveCooperation, "no moves were played")
	assert.InDelta(t, 5.0, s.MedianScore, 1e-9)
	assert.InDelta(t, 1.0, s.GenomeCooperation, 1e-9)
}
