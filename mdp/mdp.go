/*
Package mdp defines the contract shared by every Markov Decision Process the
planners can solve.

An MDP is a finite set of states, a fixed enumeration of actions, a stochastic
transition model, a reward function and a discount factor. The package holds
no algorithm; solvers live in package solver and concrete models (such as the
grid maze) live in their own packages.
*/
package mdp

// Action is one of the fixed, enumerated moves an agent can attempt.
type Action uint8

// The action enumeration. The order is part of the contract: solvers break
// ties between equally good actions in favour of the earliest one.
const (
	Up Action = iota
	Down
	Left
	Right
)

// Actions lists every action in enumeration order.
var Actions = []Action{Up, Down, Left, Right}

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// ParseAction converts a name produced by String back to an Action.
func ParseAction(name string) (Action, bool) {
	for _, a := range Actions {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// Outcome is one possible result of attempting an action: the action that
// was actually executed, the state it leads to and its probability.
type Outcome[S comparable] struct {
	Actual      Action  // Actual is the action the environment executed.
	Next        S       // Next is the resulting state; always a valid state.
	Probability float64 // Probability of this outcome given the intended action.
}

// MDP is a fully known Markov Decision Process over states of type S.
//
// Implementations must be immutable once built. For every state s and every
// action a in ActionsAt(s) the probabilities of Outcomes(s, a) sum to 1.
type MDP[S comparable] interface {
	// States returns every valid state in a stable order.
	States() []S

	// Actions returns the full action enumeration.
	Actions() []Action

	// ActionsAt returns the actions available in s, in enumeration order.
	// Every state has at least one action.
	ActionsAt(s S) []Action

	// Outcomes returns the outcomes of intending action a in state s.
	// Callers must not modify the returned slice.
	Outcomes(s S, intended Action) []Outcome[S]

	// DiscountFactor returns γ, the per-step decay of future rewards.
	DiscountFactor() float64

	// TransitionModel returns the probability that attempting intended in s
	// results in actual being executed.
	TransitionModel(s S, intended, actual Action) float64

	// Reward returns the reward collected in s.
	Reward(s S) float64
}
