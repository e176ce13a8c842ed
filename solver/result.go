/*
Package solver computes optimal policies of fully known MDPs with value
iteration and (modified) policy iteration.

Both solvers perform synchronous sweeps: every state of a sweep is updated from
the same snapshot of the previous estimates. They run on the calling goroutine
and never mutate the MDP, so one MDP may be solved many times concurrently.
*/
package solver

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-planner/mdp"
)

var (
	ErrInvalidDiscount         = errors.New("discount factor must be in (0, 1)")
	ErrInvalidMaxError         = errors.New("maximum error must be positive")
	ErrInvalidEvaluationRounds = errors.New("number of policy evaluation rounds must be at least 1")
	ErrNoActions               = errors.New("state has no available actions")
)

// Result is the outcome of solving an MDP.
type Result[S comparable] struct {
	Utilities  map[S]float64    // Utilities are the converged utility of each state.
	Policy     map[S]mdp.Action // Policy is the action to take at each state.
	Iterations int              // Iterations is the length of every state's history.
	History    map[S][]float64  // History records each state's utility estimate per iteration, starting at zero.
}

// checkDiscount rejects discount factors for which the solvers do not converge.
func checkDiscount[S comparable](m mdp.MDP[S]) error {
	if gamma := m.DiscountFactor(); !(gamma > 0 && gamma < 1) {
		return ErrInvalidDiscount
	}
	return nil
}

// checkActions rejects MDPs with a state that has no action to take.
func checkActions[S comparable](m mdp.MDP[S]) error {
	for _, s := range m.States() {
		if len(m.ActionsAt(s)) == 0 {
			return fmt.Errorf("%w: %v", ErrNoActions, s)
		}
	}
	return nil
}

// zeroUtilities returns a utility table with every state set to zero.
func zeroUtilities[S comparable](states []S) map[S]float64 {
	utilities := make(map[S]float64, len(states))
	for _, s := range states {
		utilities[s] = 0
	}
	return utilities
}

// record appends each state's current utility to its history.
func record[S comparable](history map[S][]float64, utilities map[S]float64) {
	for s, u := range utilities {
		history[s] = append(history[s], u)
	}
}
