package solver

import (
	"maps"

	"github.com/beka-birhanu/vinom-planner/mdp"
)

// PolicyIteration alternates policy evaluation and policy improvement,
// starting from the first available action of every state, until an
// improvement step leaves the policy unchanged.
//
// numPolicyEvaluation sweeps of policy evaluation are run before each
// improvement. One sweep is classic policy iteration; more sweeps make it
// modified policy iteration.
func PolicyIteration[S comparable](m mdp.MDP[S], numPolicyEvaluation int) (*Result[S], error) {
	if err := checkDiscount(m); err != nil {
		return nil, err
	}
	if numPolicyEvaluation < 1 {
		return nil, ErrInvalidEvaluationRounds
	}
	if err := checkActions(m); err != nil {
		return nil, err
	}

	states := m.States()
	utilities := zeroUtilities(states)
	policy := make(map[S]mdp.Action, len(states))
	for _, s := range states {
		policy[s] = m.ActionsAt(s)[0]
	}

	// Record the zeroth iteration's utilities.
	history := make(map[S][]float64, len(states))
	record(history, utilities)
	iterations := 1

	for changed := true; changed; {
		var sweeps map[S][]float64
		utilities, sweeps = EvaluatePolicy(m, policy, utilities, numPolicyEvaluation)
		for s, us := range sweeps {
			history[s] = append(history[s], us...)
		}
		iterations += numPolicyEvaluation

		policy, changed = ImprovePolicy(m, policy, utilities)
	}

	return &Result[S]{
		Utilities:  utilities,
		Policy:     policy,
		Iterations: iterations,
		History:    history,
	}, nil
}

// EvaluatePolicy runs rounds synchronous sweeps of the simplified Bellman
// equation, where the action of each state is fixed by policy:
//
//	U(s) = R(s) + γ·Σ P(s'|s,π(s))·U(s')
//
// It returns the new utilities and, per state, the utility after each sweep.
// The utilities argument is not modified.
func EvaluatePolicy[S comparable](m mdp.MDP[S], policy map[S]mdp.Action, utilities map[S]float64, rounds int) (map[S]float64, map[S][]float64) {
	states := m.States()
	gamma := m.DiscountFactor()

	current := make(map[S]float64, len(states))
	maps.Copy(current, utilities)
	updated := make(map[S]float64, len(states))
	sweeps := make(map[S][]float64, len(states))

	for i := 0; i < rounds; i++ {
		for _, s := range states {
			updated[s] = m.Reward(s) + gamma*ExpectedUtility(m, s, policy[s], current)
		}
		maps.Copy(current, updated)
		record(sweeps, current)
	}

	return current, sweeps
}

// ImprovePolicy returns the greedy improvement of policy under utilities and
// whether any state's action changed. A state switches to its best action only
// when that action's expected utility strictly exceeds the current one's.
func ImprovePolicy[S comparable](m mdp.MDP[S], policy map[S]mdp.Action, utilities map[S]float64) (map[S]mdp.Action, bool) {
	improved := make(map[S]mdp.Action, len(policy))
	changed := false

	for _, s := range m.States() {
		best, bestUtility := BestAction(m, s, utilities)

		if bestUtility > ExpectedUtility(m, s, policy[s], utilities) {
			improved[s] = best
			changed = true
		} else {
			improved[s] = policy[s]
		}
	}

	return improved, changed
}
