package solver

import (
	"math"
	"testing"

	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/beka-birhanu/vinom-planner/mdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfLoop is a single-state MDP in which every action stays in place.
type selfLoop struct {
	reward   float64
	discount float64
}

func (l selfLoop) States() []string { return []string{"s"} }

func (l selfLoop) Actions() []mdp.Action { return mdp.Actions }

func (l selfLoop) ActionsAt(string) []mdp.Action { return mdp.Actions }

func (l selfLoop) DiscountFactor() float64 { return l.discount }

func (l selfLoop) Reward(string) float64 { return l.reward }

func (l selfLoop) TransitionModel(string, mdp.Action, mdp.Action) float64 { return 1 }

func (l selfLoop) Outcomes(s string, a mdp.Action) []mdp.Outcome[string] {
	return []mdp.Outcome[string]{{Actual: a, Next: s, Probability: 1}}
}

// stuck is a self loop whose only state has no available action.
type stuck struct{ selfLoop }

func (stuck) ActionsAt(string) []mdp.Action { return nil }

func newMaze(t *testing.T, grid [][]maze.Cell, start maze.Position, discount float64) *maze.Maze {
	t.Helper()
	m, err := maze.New(grid, start, discount)
	require.NoError(t, err)
	return m
}

// evaluateExactly runs policy evaluation long enough to reach the policy's
// true utilities for discount factors well below 1.
func evaluateExactly[S comparable](m mdp.MDP[S], policy map[S]mdp.Action) map[S]float64 {
	utilities, _ := EvaluatePolicy(m, policy, zeroUtilities(m.States()), 3000)
	return utilities
}

func TestValueIteration(t *testing.T) {
	t.Run("Single state converges to r/(1-γ)", func(t *testing.T) {
		l := selfLoop{reward: 1, discount: 0.9}

		result, err := ValueIteration[string](l, 0.01)
		require.NoError(t, err)

		assert.InDelta(t, 10.0, result.Utilities["s"], 0.02)
		assert.Equal(t, mdp.Up, result.Policy["s"])
	})

	t.Run("One cell maze stays in place", func(t *testing.T) {
		m := newMaze(t, [][]maze.Cell{{maze.Empty}}, maze.Position{}, 0.9)

		result, err := ValueIteration[maze.Position](m, 1e-4)
		require.NoError(t, err)

		assert.InDelta(t, -0.04/(1-0.9), result.Utilities[maze.Position{}], 1e-3)
	})

	t.Run("Golden values for a two cell maze", func(t *testing.T) {
		m := newMaze(t, [][]maze.Cell{{maze.Green, maze.Brown}}, maze.Position{}, 0.9)
		left, right := maze.Position{Row: 0, Col: 0}, maze.Position{Row: 0, Col: 1}

		result, err := ValueIteration[maze.Position](m, 1e-6)
		require.NoError(t, err)

		// U(left) = 1 + 0.9·U(left); U(right) = -1 + 0.9·(0.8·U(left) + 0.2·U(right))
		assert.InDelta(t, 10.0, result.Utilities[left], 1e-5)
		assert.InDelta(t, 6.2/0.82, result.Utilities[right], 1e-5)
		assert.Equal(t, mdp.Left, result.Policy[left])
		assert.Equal(t, mdp.Left, result.Policy[right])
	})

	t.Run("Golden values for the sample maze", func(t *testing.T) {
		for _, tc := range []struct {
			discount   float64
			maxError   float64
			iterations int
			corner     float64
		}{
			{discount: 0.99, maxError: 20, iterations: 161, corner: 79.972297},
			{discount: 0.95, maxError: 1.5, iterations: 51, corner: 18.4611},
		} {
			m := newMaze(t, maze.Part1Maze(), maze.Part1Start, tc.discount)

			result, err := ValueIteration[maze.Position](m, tc.maxError)
			require.NoError(t, err)

			assert.Equal(t, tc.iterations, result.Iterations, "discount %v", tc.discount)
			assert.InDelta(t, tc.corner, result.Utilities[maze.Position{Row: 0, Col: 0}], 1e-3, "discount %v", tc.discount)
		}
	})

	t.Run("Policy is the argmax of the final sweep", func(t *testing.T) {
		m := newMaze(t, maze.Part1Maze(), maze.Part1Start, 0.99)

		result, err := ValueIteration[maze.Position](m, 20)
		require.NoError(t, err)

		for _, s := range m.States() {
			_, action := BellmanUpdate[maze.Position](m, s, result.Utilities)
			assert.Equal(t, action, result.Policy[s], "state %v", s)
		}
	})

	t.Run("History covers every iteration", func(t *testing.T) {
		m := newMaze(t, maze.Part1Maze(), maze.Part1Start, 0.95)

		result, err := ValueIteration[maze.Position](m, 1.5)
		require.NoError(t, err)

		assert.Len(t, result.History, len(m.States()))
		for _, s := range m.States() {
			require.Len(t, result.History[s], result.Iterations)
			assert.Equal(t, 0.0, result.History[s][0])
			assert.Equal(t, result.Utilities[s], result.History[s][result.Iterations-1])
		}
	})

	t.Run("Policy is greedy with respect to the utilities", func(t *testing.T) {
		for _, tc := range []struct {
			discount float64
			maxError float64
		}{
			{discount: 0.99, maxError: 20},
			{discount: 0.95, maxError: 1.5},
			{discount: 0.9, maxError: 1e-3},
		} {
			m := newMaze(t, maze.Part1Maze(), maze.Part1Start, tc.discount)

			result, err := ValueIteration[maze.Position](m, tc.maxError)
			require.NoError(t, err)

			for _, s := range m.States() {
				chosen := ExpectedUtility[maze.Position](m, s, result.Policy[s], result.Utilities)
				for _, a := range m.ActionsAt(s) {
					assert.LessOrEqual(t, ExpectedUtility[maze.Position](m, s, a, result.Utilities), chosen, "state %v action %v", s, a)
				}
			}
		}
	})

	t.Run("Rejects invalid configuration", func(t *testing.T) {
		for _, discount := range []float64{0, 1, 1.5, -0.5, math.NaN()} {
			_, err := ValueIteration[string](selfLoop{reward: 1, discount: discount}, 0.1)
			assert.ErrorIs(t, err, ErrInvalidDiscount, "discount %v", discount)
		}

		_, err := ValueIteration[string](selfLoop{reward: 1, discount: 0.9}, 0)
		assert.ErrorIs(t, err, ErrInvalidMaxError)

		_, err = ValueIteration[string](stuck{selfLoop{reward: 1, discount: 0.9}}, 0.1)
		assert.ErrorIs(t, err, ErrNoActions)
	})
}

func TestPolicyIteration(t *testing.T) {
	t.Run("Classic policy iteration on a two cell maze", func(t *testing.T) {
		m := newMaze(t, [][]maze.Cell{{maze.Green, maze.Brown}}, maze.Position{}, 0.9)
		left, right := maze.Position{Row: 0, Col: 0}, maze.Position{Row: 0, Col: 1}

		result, err := PolicyIteration[maze.Position](m, 1)
		require.NoError(t, err)

		assert.Equal(t, mdp.Left, result.Policy[left])
		assert.Equal(t, mdp.Left, result.Policy[right])
		assert.Equal(t, 3, result.Iterations)
		assert.InDeltaSlice(t, []float64{0, 1, 1.9}, result.History[left], 1e-12)
		assert.InDeltaSlice(t, []float64{0, -1, -0.46}, result.History[right], 1e-12)
	})

	t.Run("Modified policy iteration reaches the fixed point", func(t *testing.T) {
		m := newMaze(t, [][]maze.Cell{{maze.Green, maze.Brown}}, maze.Position{}, 0.9)

		result, err := PolicyIteration[maze.Position](m, 400)
		require.NoError(t, err)

		assert.InDelta(t, 10.0, result.Utilities[maze.Position{Row: 0, Col: 0}], 1e-6)
		assert.InDelta(t, 6.2/0.82, result.Utilities[maze.Position{Row: 0, Col: 1}], 1e-6)
		for _, s := range m.States() {
			assert.Len(t, result.History[s], result.Iterations)
		}
		assert.Equal(t, 0, (result.Iterations-1)%400)
	})

	t.Run("Agrees with value iteration", func(t *testing.T) {
		for _, grid := range [][][]maze.Cell{
			{{maze.Green, maze.Brown}},
			maze.Part1Maze(),
		} {
			m := newMaze(t, grid, maze.Position{}, 0.9)

			vi, err := ValueIteration[maze.Position](m, 1e-6)
			require.NoError(t, err)
			pi, err := PolicyIteration[maze.Position](m, 500)
			require.NoError(t, err)

			viUtilities := evaluateExactly[maze.Position](m, vi.Policy)
			piUtilities := evaluateExactly[maze.Position](m, pi.Policy)
			for _, s := range m.States() {
				assert.InDelta(t, viUtilities[s], piUtilities[s], 1e-3, "state %v", s)
			}
		}
	})

	t.Run("Each improvement does not lower the policy's utilities", func(t *testing.T) {
		m := newMaze(t, maze.Part1Maze(), maze.Part1Start, 0.9)

		policy := make(map[maze.Position]mdp.Action)
		for _, s := range m.States() {
			policy[s] = mdp.Up
		}

		previous := evaluateExactly[maze.Position](m, policy)
		for changed := true; changed; {
			policy, changed = ImprovePolicy[maze.Position](m, policy, previous)
			current := evaluateExactly[maze.Position](m, policy)
			for _, s := range m.States() {
				assert.GreaterOrEqual(t, current[s], previous[s]-1e-9, "state %v", s)
			}
			previous = current
		}
	})

	t.Run("Rejects invalid configuration", func(t *testing.T) {
		_, err := PolicyIteration[string](selfLoop{reward: 1, discount: 1}, 1)
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = PolicyIteration[string](selfLoop{reward: 1, discount: 0.9}, 0)
		assert.ErrorIs(t, err, ErrInvalidEvaluationRounds)

		_, err = PolicyIteration[string](stuck{selfLoop{reward: 1, discount: 0.9}}, 1)
		assert.ErrorIs(t, err, ErrNoActions)
	})
}

func TestEvaluatePolicy(t *testing.T) {
	m := newMaze(t, [][]maze.Cell{{maze.Green, maze.Brown}}, maze.Position{}, 0.9)
	policy := map[maze.Position]mdp.Action{{Row: 0, Col: 0}: mdp.Up, {Row: 0, Col: 1}: mdp.Up}
	start := map[maze.Position]float64{{Row: 0, Col: 0}: 0, {Row: 0, Col: 1}: 0}

	utilities, sweeps := EvaluatePolicy[maze.Position](m, policy, start, 2)

	assert.Equal(t, 0.0, start[maze.Position{Row: 0, Col: 0}], "input utilities must not change")
	assert.Len(t, sweeps[maze.Position{Row: 0, Col: 0}], 2)
	// Second sweep: 1 + 0.9·(0.9·1 + 0.1·(-1)) and -1 + 0.9·(0.9·(-1) + 0.1·1)
	assert.InDelta(t, 1.72, utilities[maze.Position{Row: 0, Col: 0}], 1e-12)
	assert.InDelta(t, -1.72, utilities[maze.Position{Row: 0, Col: 1}], 1e-12)
}

func TestExpectedUtility(t *testing.T) {
	m := newMaze(t, [][]maze.Cell{{maze.Green, maze.Brown}}, maze.Position{}, 0.9)
	left := maze.Position{Row: 0, Col: 0}
	utilities := map[maze.Position]float64{left: 10, {Row: 0, Col: 1}: 5}

	first := ExpectedUtility[maze.Position](m, left, mdp.Right, utilities)
	second := ExpectedUtility[maze.Position](m, left, mdp.Right, utilities)

	assert.InDelta(t, 0.8*5+0.1*10+0.1*10, first, 1e-12)
	assert.Equal(t, first, second)
}

func TestBestActionTieBreak(t *testing.T) {
	l := selfLoop{reward: 0, discount: 0.5}

	action, utility := BestAction[string](l, "s", map[string]float64{"s": 3})

	assert.Equal(t, mdp.Up, action)
	assert.Equal(t, 3.0, utility)
}
