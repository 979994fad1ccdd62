package ipd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultReproduction() *ReproductionConfig {
	return &ReproductionConfig{QuartileQuotas: append([]int(nil), DefaultQuartileQuotas...)}
}

// scoredPopulation builds a population whose agent i has scores[i] and genome genomes[i].
func scoredPopulation(genomes []Genome, scores []int) *Population {
	p := PopulationFromGenomes(0, genomes)
	for i, s := range scores {
		p.Agents[i].Score = s
	}
	return p
}

func TestBreedPreservesPopulationSize(t *testing.T) {
	for _, n := range []int{4, 8, 20} {
		p := NewPopulation(n, 0.5, seeded(uint64(n)))
		PlayGeneration(p, 5)

		next, err := Breed(p, defaultReproduction(), DefaultMutationRate, seeded(1))
		require.NoError(t, err)
		assert.Equal(t, n, next.Size(), "population of %d", n)
		assert.Equal(t, 1, next.Generation)
		for i, a := range next.Agents {
			assert.Equal(t, i, a.ID)
			assert.Zero(t, a.Score)
		}
	}
}

func TestBreedRejectsBadPopulationSize(t *testing.T) {
	for _, n := range []int{0, 6, 10} {
		p := PopulationFromGenomes(0, make([]Genome, n))
		_, err := Breed(p, defaultReproduction(), 0, seeded(1))
		assert.ErrorIs(t, err, ErrConfig, "population of %d", n)
	}
}

func TestBreedRejectsWrongQuotaCount(t *testing.T) {
	p := PopulationFromGenomes(0, make([]Genome, 4))
	_, err := Breed(p, &ReproductionConfig{QuartileQuotas: []int{4}}, 0, seeded(1))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestBreedRequiresConfig(t *testing.T) {
	p := PopulationFromGenomes(0, make([]Genome, 4))
	next, err := NewReproduction(nil, 0, seeded(1)).Breed(p)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, next)
}

func TestRankByScoreIsStable(t *testing.T) {
	p := scoredPopulation(make([]Genome, 6), []int{5, 9, 5, 1, 9, 5})
	ranked := RankByScore(p.Agents)

	ids := make([]int, len(ranked))
	for i, a := range ranked {
		ids[i] = a.ID
	}
	assert.Equal(t, []int{1, 4, 0, 2, 5, 3}, ids)
	assert.Equal(t, 0, p.Agents[0].ID, "input order must not change")
}

func TestMatePositionWraps(t *testing.T) {
	assert.Equal(t, 4, matePosition(0, 5))
	assert.Equal(t, 0, matePosition(1, 5))
	assert.Equal(t, 3, matePosition(4, 5))
	assert.Equal(t, 0, matePosition(0, 1))
}

func TestBreedMatingOrder(t *testing.T) {
	p := scoredPopulation(make([]Genome, 8), []int{10, 80, 30, 70, 50, 60, 20, 40})
	r := NewReproduction(defaultReproduction(), 0, seeded(3))

	next, err := r.Breed(p)
	require.NoError(t, err)
	require.Equal(t, 8, next.Size())

	assert.Equal(t, []Mating{
		{Quartile: 0, ParentA: 3, ParentB: 1, Offspring: []int{0, 1}},
		{Quartile: 1, ParentA: 4, ParentB: 5, Offspring: []int{2}},
		{Quartile: 2, ParentA: 2, ParentB: 7, Offspring: []int{3}},
		{Quartile: 0, ParentA: 1, ParentB: 3, Offspring: []int{4, 5}},
		{Quartile: 1, ParentA: 5, ParentB: 4, Offspring: []int{6}},
		{Quartile: 2, ParentA: 7, ParentB: 2, Offspring: []int{7}},
	}, r.Matings)
}

func TestBreedExcludesBottomQuartile(t *testing.T) {
	genomes := make([]Genome, 8)
	scores := []int{10, 80, 30, 70, 50, 60, 20, 40}
	for i := range genomes {
		genomes[i] = UniformGenome(Cooperate)
	}
	// Agents 6 and 0 rank last.
	genomes[6] = UniformGenome(Defect)
	genomes[0] = UniformGenome(Defect)

	next, err := Breed(scoredPopulation(genomes, scores), defaultReproduction(), 0, seeded(8))
	require.NoError(t, err)
	for _, a := range next.Agents {
		assert.Equal(t, UniformGenome(Cooperate), a.Genome, "offspring %d inherited from the bottom quartile", a.ID)
	}
}

func TestBreedSelfMatesSingleMemberQuartiles(t *testing.T) {
	genomes := []Genome{
		UniformGenome(Cooperate),
		UniformGenome(Defect),
		withGenes(UniformGenome(Defect), Cooperate, FirstMove),
		UniformGenome(Cooperate),
	}
	p := scoredPopulation(genomes, []int{4, 3, 2, 1})
	next, err := Breed(p, defaultReproduction(), 0, seeded(5))
	require.NoError(t, err)

	want := []Genome{genomes[0], genomes[0], genomes[1], genomes[2]}
	for i, a := range next.Agents {
		assert.Equal(t, want[i], a.Genome, "offspring %d", i)
	}
}

func TestBreedWithCustomQuotas(t *testing.T) {
	p := scoredPopulation(make([]Genome, 8), []int{10, 80, 30, 70, 50, 60, 20, 40})
	r := NewReproduction(&ReproductionConfig{QuartileQuotas: []int{1, 1, 1, 1}}, 0, seeded(3))

	next, err := r.Breed(p)
	require.NoError(t, err)
	assert.Equal(t, 8, next.Size())
	require.Len(t, r.Matings, 8)
	for _, m := range r.Matings {
		assert.Len(t, m.Offspring, 1)
	}
	assert.Equal(t, 3, r.Matings[3].Quartile)
	assert.Equal(t, 0, r.Matings[3].ParentA)
	assert.Equal(t, 6, r.Matings[3].ParentB)
}
