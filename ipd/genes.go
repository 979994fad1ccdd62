package ipd

import "fmt"

// Action is a single move in the Prisoner's Dilemma.
type Action uint8

const (
	Cooperate Action = iota
	Defect
)

// Flip returns the opposite action.
func (a Action) Flip() Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

// String returns "C" or "D".
func (a Action) String() string {
	switch a {
	case Cooperate:
		return "C"
	case Defect:
		return "D"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// ParseAction parses "C" or "D".
func ParseAction(s string) (Action, error) {
	switch s {
	case "C", "c":
		return Cooperate, nil
	case "D", "d":
		return Defect, nil
	default:
		return 0, fmt.Errorf("invalid action %q", s)
	}
}

// Outcome is the result of one round seen from a single agent's side.
type Outcome uint8

const (
	MutualCooperate Outcome = iota // both cooperated
	Sucker                         // we cooperated, opponent defected
	Exploit                        // we defected, opponent cooperated
	MutualDefect                   // both defected

	numOutcomes = 4
)

var outcomeSymbols = [numOutcomes]byte{'M', 'L', 'W', 'F'}

// String returns the single-letter symbol used in reports: M, L, W or F.
func (o Outcome) String() string {
	if int(o) < numOutcomes {
		return string(outcomeSymbols[o])
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// ParseOutcome parses a single outcome letter.
func ParseOutcome(s string) (Outcome, error) {
	if len(s) == 1 {
		for i, sym := range outcomeSymbols {
			if s[0] == sym {
				return Outcome(i), nil
			}
		}
	}
	return 0, fmt.Errorf("invalid outcome %q", s)
}

// outcomeOf maps a pair of simultaneous moves to the outcome for the first mover.
func outcomeOf(own, other Action) Outcome {
	switch {
	case own == Cooperate && other == Cooperate:
		return MutualCooperate
	case own == Cooperate && other == Defect:
		return Sucker
	case own == Defect && other == Cooperate:
		return Exploit
	default:
		return MutualDefect
	}
}

// Context is the lookup key into a Genome. Values 0..2 are the bootstrap
// positions; 3..66 encode a window of three outcomes, oldest first.
type Context uint8

const (
	FirstMove Context = iota
	SecondMove
	ThirdMove

	// NumBootstrap is the number of bootstrap contexts.
	NumBootstrap = 3
	// HistoryLength is the size of the outcome window that keys a history context.
	HistoryLength = 3
	// NumHistory is the number of distinct history windows (4^3).
	NumHistory = numOutcomes * numOutcomes * numOutcomes
	// NumContexts is the total number of genome entries.
	NumContexts = NumBootstrap + NumHistory
)

// HistoryContext returns the context keyed by three outcomes in chronological order.
func HistoryContext(oldest, middle, newest Outcome) Context {
	return Context(NumBootstrap + int(oldest)*numOutcomes*numOutcomes + int(middle)*numOutcomes + int(newest))
}

// IsBootstrap reports whether c is one of FirstMove, SecondMove or ThirdMove.
func (c Context) IsBootstrap() bool {
	return c < NumBootstrap
}

// Window returns the outcomes encoded by a history context.
// It panics for bootstrap contexts.
func (c Context) Window() [HistoryLength]Outcome {
	if c.IsBootstrap() || int(c) >= NumContexts {
		panic(fmt.Sprintf("context %d has no outcome window", c))
	}
	i := int(c) - NumBootstrap
	return [HistoryLength]Outcome{
		Outcome(i / (numOutcomes * numOutcomes)),
		Outcome(i / numOutcomes % numOutcomes),
		Outcome(i % numOutcomes),
	}
}

// String returns MOVE1..MOVE3 for bootstrap contexts and the three outcome
// letters (e.g. "MLW") for history contexts.
func (c Context) String() string {
	if c.IsBootstrap() {
		return fmt.Sprintf("MOVE%d", int(c)+1)
	}
	if int(c) >= NumContexts {
		return fmt.Sprintf("Context(%d)", uint8(c))
	}
	w := c.Window()
	return w[0].String() + w[1].String() + w[2].String()
}

// AllContexts returns every context in genome order.
func AllContexts() []Context {
	out := make([]Context, NumContexts)
	for i := range out {
		out[i] = Context(i)
	}
	return out
}
