package ipd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[Simulation]
agent_count = 12
rounds_per_generation = 40
generations = 25
seed = 99

[Genome]
mutation_rate = 0.01
initial_cooperate_prob = 0.75

[Reproduction]
quartile_quotas = 1 1 1 1
`

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, SimulationConfig{
		AgentCount:          12,
		RoundsPerGeneration: 40,
		Generations:         25,
		Seed:                99,
	}, config.Simulation)
	assert.InDelta(t, 0.01, config.Genome.MutationRate, 1e-12)
	assert.InDelta(t, 0.75, config.Genome.CooperateProb, 1e-12)
	assert.Equal(t, []int{1, 1, 1, 1}, config.Reproduction.QuartileQuotas)
}

func TestParseConfigDefaults(t *testing.T) {
	config, err := ParseConfig([]byte(`
[Simulation]
agent_count = 4
rounds_per_generation = 1
generations = 1
`))
	require.NoError(t, err)

	assert.Zero(t, config.Simulation.Seed)
	assert.Equal(t, DefaultMutationRate, config.Genome.MutationRate)
	assert.Equal(t, DefaultCooperateProb, config.Genome.CooperateProb)
	assert.Equal(t, DefaultQuartileQuotas, config.Reproduction.QuartileQuotas)
}

func TestParseConfigKeepsExplicitZeroRate(t *testing.T) {
	config, err := ParseConfig([]byte(`
[Simulation]
agent_count = 4
rounds_per_generation = 1
generations = 1

[Genome]
mutation_rate = 0
`))
	require.NoError(t, err)
	assert.Zero(t, config.Genome.MutationRate)
}

func TestConfigValidation(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero agents":          func(c *Config) { c.Simulation.AgentCount = 0 },
		"agents not mod 4":     func(c *Config) { c.Simulation.AgentCount = 6 },
		"negative agents":      func(c *Config) { c.Simulation.AgentCount = -4 },
		"zero rounds":          func(c *Config) { c.Simulation.RoundsPerGeneration = 0 },
		"zero generations":     func(c *Config) { c.Simulation.Generations = 0 },
		"mutation above one":   func(c *Config) { c.Genome.MutationRate = 1.5 },
		"negative cooperate":   func(c *Config) { c.Genome.CooperateProb = -0.1 },
		"three quotas":         func(c *Config) { c.Reproduction.QuartileQuotas = []int{2, 1, 1} },
		"quota too large":      func(c *Config) { c.Reproduction.QuartileQuotas = []int{3, 1, 0, 0} },
		"quotas do not add up": func(c *Config) { c.Reproduction.QuartileQuotas = []int{2, 2, 1, 0} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewConfig(8, 10, 5)
			require.NoError(t, c.Validate())
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrConfig)
		})
	}
}

func TestNewConfigCopiesDefaultQuotas(t *testing.T) {
	c := NewConfig(4, 1, 1)
	c.Reproduction.QuartileQuotas[0] = 0
	assert.Equal(t, []int{2, 1, 1, 0}, DefaultQuartileQuotas)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("[Simulation]\nagent_count = 10\nrounds_per_generation = 1\ngenerations = 1\n"))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = ParseConfig([]byte("[Simulation]\nagent_count = 4\nrounds_per_generation = 1\ngenerations = 1\n[Reproduction]\nquartile_quotas = 2 x 1 0\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("[Simulation]\nagent_count = 4\nrounds_per_generation = 1\ngenerations = 1\n[Genome]\nmutation_rate = often\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournament-config")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, config.Simulation.AgentCount)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadConfigLeavesValidationToCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial-config")
	require.NoError(t, os.WriteFile(path, []byte("[Genome]\nmutation_rate = 0.02\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrConfig)

	config, err := ReadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, config.Genome.MutationRate, 1e-12)
	assert.Equal(t, DefaultQuartileQuotas, config.Reproduction.QuartileQuotas)
	assert.ErrorIs(t, config.Validate(), ErrConfig)

	config.Simulation.AgentCount = 8
	config.Simulation.RoundsPerGeneration = 5
	config.Simulation.Generations = 2
	assert.NoError(t, config.Validate())
}
