package solver

import (
	"maps"
	"math"

	"github.com/beka-birhanu/vinom-planner/mdp"
)

// ValueIteration updates the utility of every state from the utilities of its
// neighbours with the Bellman equation until the largest change of a sweep, δ,
// drops below maxError·(1−γ)/γ. The returned utilities, the input of that
// last sweep, are then within maxError/γ of the true utilities. The policy
// holds the maximising action of every state in the final sweep, so it is
// greedy with respect to the returned utilities.
func ValueIteration[S comparable](m mdp.MDP[S], maxError float64) (*Result[S], error) {
	if err := checkDiscount(m); err != nil {
		return nil, err
	}
	if !(maxError > 0) {
		return nil, ErrInvalidMaxError
	}
	if err := checkActions(m); err != nil {
		return nil, err
	}

	gamma := m.DiscountFactor()
	threshold := maxError * (1 - gamma) / gamma
	states := m.States()

	// U and U'
	current, next := make(map[S]float64, len(states)), zeroUtilities(states)
	policy := make(map[S]mdp.Action, len(states))
	history := make(map[S][]float64, len(states))
	iterations := 0

	for {
		// U ← U'
		maps.Copy(current, next)
		record(history, current)
		iterations++

		delta := 0.0
		for _, s := range states {
			next[s], policy[s] = BellmanUpdate(m, s, current)
			delta = math.Max(delta, math.Abs(next[s]-current[s]))
		}

		if delta < threshold {
			break
		}
	}

	return &Result[S]{
		Utilities:  current,
		Policy:     policy,
		Iterations: iterations,
		History:    history,
	}, nil
}
