package ipd

// Payoff values of the Prisoner's Dilemma, indexed by Outcome.
var payoffs = [numOutcomes]int{
	MutualCooperate: 3,
	Sucker:          0,
	Exploit:         5,
	MutualDefect:    1,
}

// Payoff returns the score awarded for an outcome.
func Payoff(o Outcome) int {
	return payoffs[o]
}

// Resolve computes the outcomes and payoffs for one simultaneous round.
func Resolve(move1, move2 Action) (o1, o2 Outcome, p1, p2 int) {
	o1 = outcomeOf(move1, move2)
	o2 = outcomeOf(move2, move1)
	return o1, o2, payoffs[o1], payoffs[o2]
}

// Play runs one round between two agents: both decide from their own logs,
// the payoffs are added to their scores and each log receives the outcome
// from its owner's side. Nothing is modified if either decision fails.
func Play(agent1, agent2 *Agent) error {
	move1, err := agent1.Decide(agent2.ID)
	if err != nil {
		return err
	}
	move2, err := agent2.Decide(agent1.ID)
	if err != nil {
		return err
	}

	o1, o2, p1, p2 := Resolve(move1, move2)
	agent1.Score += p1
	agent2.Score += p2
	agent1.UpdateLog(agent2.ID, o1)
	agent2.UpdateLog(agent1.ID, o2)
	return nil
}
