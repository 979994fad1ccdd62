package ipd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// GenerationResult is the per-generation line of a RunSummary.
type GenerationResult struct {
	Generation  int
	WinnerID    int
	WinnerScore int
	Summary     Summary
}

// RunSummary collects the outcome of Simulation.Run.
type RunSummary struct {
	Seed        uint64
	Generations []GenerationResult
}

// Simulation holds the state of an evolutionary tournament.
type Simulation struct {
	Config       *Config
	Population   *Population // current generation
	Reproduction *Reproduction
	Reporters    ReporterSet
	Logger       *slog.Logger
	Seed         uint64
}

// NewSimulation validates config and creates generation 0. A zero seed in the
// config is replaced with one derived from the clock; the seed actually used
// is kept in Seed so a run can be repeated.
func NewSimulation(config *Config, logger *slog.Logger) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	seed := config.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Simulation{
		Config:       config,
		Population:   NewPopulation(config.Simulation.AgentCount, config.Genome.CooperateProb, rng),
		Reproduction: NewReproduction(&config.Reproduction, config.Genome.MutationRate, rng),
		Logger:       logger.With(slog.String("component", "simulation")),
		Seed:         seed,
	}
	return s, nil
}

// AddReporter registers a reporter for every subsequent generation.
func (s *Simulation) AddReporter(r Reporter) {
	s.Reporters.Add(r)
}

// Step plays the current generation, hands its report to the reporters and
// replaces the population with the bred offspring.
func (s *Simulation) Step(ctx context.Context) (*GenerationReport, error) {
	started := time.Now()
	pop := s.Population
	rounds := s.Config.Simulation.RoundsPerGeneration

	_, winner := PlayGeneration(pop, rounds)
	report := NewReport(pop, rounds, winner)

	if err := s.Reporters.ReportGeneration(ctx, report); err != nil {
		return report, fmt.Errorf("reporting generation %d: %w", pop.Generation, err)
	}

	next, err := s.Reproduction.Breed(pop)
	if err != nil {
		return report, fmt.Errorf("breeding generation %d: %w", pop.Generation, err)
	}
	s.Population = next

	s.Logger.Info("generation complete",
		slog.Int("generation", report.Generation),
		slog.Int("winner", report.WinnerID),
		slog.Int("winner_score", report.WinnerScore()),
		slog.Float64("mean_score", report.Summary.MeanScore),
		slog.Float64("cooperation", report.Summary.MoveCooperation),
		slog.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// Run steps through the configured number of generations. Cancellation is
// checked between generations only.
func (s *Simulation) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{Seed: s.Seed}
	s.Logger.Info("starting run",
		slog.Uint64("seed", s.Seed),
		slog.Int("agents", s.Config.Simulation.AgentCount),
		slog.Int("rounds", s.Config.Simulation.RoundsPerGeneration),
		slog.Int("generations", s.Config.Simulation.Generations),
	)

	for g := 0; g < s.Config.Simulation.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		report, err := s.Step(ctx)
		if err != nil {
			return summary, err
		}
		summary.Generations = append(summary.Generations, GenerationResult{
			Generation:  report.Generation,
			WinnerID:    report.WinnerID,
			WinnerScore: report.WinnerScore(),
			Summary:     report.Summary,
		})
	}
	return summary, nil
}
