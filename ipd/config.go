package ipd

import (
	"errors"
	"fmt"

	"gopkg.in/ini.v1"
)

// ErrConfig marks every configuration validation failure.
var ErrConfig = errors.New("config error")

const (
	// DefaultMutationRate is the per-gene flip probability applied to offspring.
	DefaultMutationRate = 0.001
	// DefaultCooperateProb is the chance a gene of the initial population is Cooperate.
	DefaultCooperateProb = 0.5
)

// DefaultQuartileQuotas are the offspring produced per mating slot, from the
// top quartile to the bottom one.
var DefaultQuartileQuotas = []int{2, 1, 1, 0}

// Config stores the parameters of a simulation run.
type Config struct {
	Simulation   SimulationConfig
	Genome       GenomeConfig
	Reproduction ReproductionConfig
}

// SimulationConfig holds the run shape. The first three fields are required.
type SimulationConfig struct {
	AgentCount          int    `ini:"agent_count"`
	RoundsPerGeneration int    `ini:"rounds_per_generation"`
	Generations         int    `ini:"generations"`
	Seed                uint64 `ini:"seed"` // 0 picks a seed at start-up
}

// GenomeConfig holds genome initialisation and mutation parameters.
type GenomeConfig struct {
	MutationRate  float64
	CooperateProb float64
}

// ReproductionConfig holds the breeding quotas.
type ReproductionConfig struct {
	QuartileQuotas []int
}

// NewConfig returns a config with the given run shape and default genome and
// reproduction parameters. The result is not validated.
func NewConfig(agentCount, rounds, generations int) *Config {
	quotas := make([]int, len(DefaultQuartileQuotas))
	copy(quotas, DefaultQuartileQuotas)
	return &Config{
		Simulation: SimulationConfig{
			AgentCount:          agentCount,
			RoundsPerGeneration: rounds,
			Generations:         generations,
		},
		Genome: GenomeConfig{
			MutationRate:  DefaultMutationRate,
			CooperateProb: DefaultCooperateProb,
		},
		Reproduction: ReproductionConfig{QuartileQuotas: quotas},
	}
}

// LoadConfig loads configuration parameters from an INI file and validates them.
func LoadConfig(filePath string) (*Config, error) {
	config, err := ReadConfig(filePath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfig loads an INI file on top of the defaults without validating the
// result, so callers can layer further overrides before calling Validate.
func ReadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return parseConfig(cfg)
}

// ParseConfig parses and validates configuration from INI data held in memory.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config, err := parseConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func parseConfig(cfg *ini.File) (*Config, error) {
	config := NewConfig(0, 0, 0)

	if err := cfg.Section("Simulation").MapTo(&config.Simulation); err != nil {
		return nil, fmt.Errorf("failed to map [Simulation] section: %w", err)
	}

	// Zero is a legal rate, so defaults only apply when the key is absent.
	genome := cfg.Section("Genome")
	if genome.HasKey("mutation_rate") {
		v, err := genome.Key("mutation_rate").Float64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse [Genome] mutation_rate: %w", err)
		}
		config.Genome.MutationRate = v
	}
	if genome.HasKey("initial_cooperate_prob") {
		v, err := genome.Key("initial_cooperate_prob").Float64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse [Genome] initial_cooperate_prob: %w", err)
		}
		config.Genome.CooperateProb = v
	}

	reproduction := cfg.Section("Reproduction")
	if reproduction.HasKey("quartile_quotas") {
		quotas, err := reproduction.Key("quartile_quotas").StrictInts(" ")
		if err != nil {
			return nil, fmt.Errorf("failed to parse [Reproduction] quartile_quotas: %w", err)
		}
		config.Reproduction.QuartileQuotas = quotas
	}
	return config, nil
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.AgentCount <= 0 || s.AgentCount%4 != 0 {
		return fmt.Errorf("%w: agent_count must be a positive multiple of 4, got %d", ErrConfig, s.AgentCount)
	}
	if s.RoundsPerGeneration <= 0 {
		return fmt.Errorf("%w: rounds_per_generation must be positive", ErrConfig)
	}
	if s.Generations <= 0 {
		return fmt.Errorf("%w: generations must be positive", ErrConfig)
	}
	if c.Genome.MutationRate < 0 || c.Genome.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrConfig)
	}
	if c.Genome.CooperateProb < 0 || c.Genome.CooperateProb > 1 {
		return fmt.Errorf("%w: initial_cooperate_prob must be between 0 and 1", ErrConfig)
	}
	return c.Reproduction.validate()
}

func (r *ReproductionConfig) validate() error {
	if len(r.QuartileQuotas) != 4 {
		return fmt.Errorf("%w: quartile_quotas needs 4 values, got %d", ErrConfig, len(r.QuartileQuotas))
	}
	sum := 0
	for i, q := range r.QuartileQuotas {
		if q < 0 || q > 2 {
			return fmt.Errorf("%w: quartile_quotas[%d] must be 0, 1 or 2, got %d", ErrConfig, i, q)
		}
		sum += q
	}
	// Each quartile has N/4 slots, so the quotas must add up to 4 to refill N.
	if sum != 4 {
		return fmt.Errorf("%w: quartile_quotas must sum to 4, got %d", ErrConfig, sum)
	}
	return nil
}
