// Package ipd runs an evolutionary Iterated Prisoner's Dilemma tournament.
//
// Every agent carries a Genome: a fixed table of 67 Cooperate/Defect genes.
// Three bootstrap genes cover the first three moves against an opponent; the
// remaining 64 are keyed by the last three outcomes against that opponent.
// Each generation plays a full round-robin for a configured number of
// rounds, after which agents are ranked by score, split into quartiles and
// bred with neighbour crossover and per-gene mutation.
//
// Basic usage:
//
//	// Load configuration
//	config, err := ipd.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create the simulation and attach reporters
//	sim, err := ipd.NewSimulation(config, slog.Default())
//	if err != nil {
//		log.Fatalf("Error creating simulation: %v", err)
//	}
//	sim.AddReporter(report.NewConsoleReporter(os.Stdout, true))
//
//	// Run every configured generation
//	summary, err := sim.Run(context.Background())
//	if err != nil {
//		log.Fatalf("Error running simulation: %v", err)
//	}
//	for _, g := range summary.Generations {
//		fmt.Printf("Generation %d won by agent %d\n", g.Generation, g.WinnerID)
//	}
package ipd
