package ipd

import (
	"errors"
	"fmt"
)

// ErrUnknownOpponent is returned when an agent is asked to decide against an
// opponent it holds no log entry for.
var ErrUnknownOpponent = errors.New("no log entry for opponent")

// Agent is one player of a generation.
type Agent struct {
	ID     int
	Genome Genome
	Score  int

	// log maps opponent ID to the outcomes of every round played against
	// that opponent, oldest first, from this agent's side.
	log map[int][]Outcome
}

// NewAgent creates an agent with a zero score and an empty log.
func NewAgent(id int, genome Genome) *Agent {
	return &Agent{
		ID:     id,
		Genome: genome,
		log:    make(map[int][]Outcome),
	}
}

// ResetLog discards all history and creates one empty entry per opponent.
func (a *Agent) ResetLog(opponents []int) {
	a.log = make(map[int][]Outcome, len(opponents))
	for _, id := range opponents {
		if id == a.ID {
			continue
		}
		a.log[id] = []Outcome{}
	}
}

// Decide returns the move this agent plays against opponentID. The first
// three moves against an opponent use the bootstrap genes; afterwards the
// last three outcomes against that opponent select the gene.
func (a *Agent) Decide(opponentID int) (Action, error) {
	history, ok := a.log[opponentID]
	if !ok {
		return 0, fmt.Errorf("agent %d vs %d: %w", a.ID, opponentID, ErrUnknownOpponent)
	}
	n := len(history)
	if n < HistoryLength {
		return a.Genome.Action(Context(n)), nil
	}
	w := history[n-HistoryLength:]
	return a.Genome.Action(HistoryContext(w[0], w[1], w[2])), nil
}

// UpdateLog appends outcome to the entry for opponentID. Unknown opponents
// are ignored.
func (a *Agent) UpdateLog(opponentID int, outcome Outcome) {
	history, ok := a.log[opponentID]
	if !ok {
		return
	}
	a.log[opponentID] = append(history, outcome)
}

// History returns a copy of the outcomes recorded against opponentID.
func (a *Agent) History(opponentID int) ([]Outcome, bool) {
	history, ok := a.log[opponentID]
	if !ok {
		return nil, false
	}
	out := make([]Outcome, len(history))
	copy(out, history)
	return out, true
}
