package solver

import (
	"math"

	"github.com/beka-birhanu/vinom-planner/mdp"
)

// ExpectedUtility returns the expected utility of the state reached by
// intending action in s, given the current utility estimates.
//
// Only the outcomes defined for (s, action) are visited; every other executed
// action has probability zero and contributes nothing to the sum.
func ExpectedUtility[S comparable](m mdp.MDP[S], s S, action mdp.Action, utilities map[S]float64) float64 {
	expected := 0.0
	for _, o := range m.Outcomes(s, action) {
		expected += m.TransitionModel(s, action, o.Actual) * utilities[o.Next]
	}
	return expected
}

// BestAction returns the action of s with the highest expected utility and
// that utility. Ties go to the action that comes first in enumeration order.
func BestAction[S comparable](m mdp.MDP[S], s S, utilities map[S]float64) (mdp.Action, float64) {
	best := math.Inf(-1)
	var bestAction mdp.Action
	for _, a := range m.ActionsAt(s) {
		if eu := ExpectedUtility(m, s, a, utilities); eu > best {
			best = eu
			bestAction = a
		}
	}
	return bestAction, best
}

// BellmanUpdate applies the Bellman equation to s: the immediate reward plus
// the discounted expected utility of the best action. It returns the updated
// utility and the action achieving it.
func BellmanUpdate[S comparable](m mdp.MDP[S], s S, utilities map[S]float64) (float64, mdp.Action) {
	action, expected := BestAction(m, s, utilities)
	return m.Reward(s) + m.DiscountFactor()*expected, action
}
