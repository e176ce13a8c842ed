package maze

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-planner/mdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("States exclude walls in row-major order", func(t *testing.T) {
		m, err := New(Part1Maze(), Part1Start, 0.99)
		require.NoError(t, err)

		assert.Len(t, m.States(), 36-5)
		assert.Equal(t, Position{Row: 0, Col: 0}, m.States()[0])
		assert.Equal(t, Position{Row: 0, Col: 2}, m.States()[1])
		for _, s := range m.States() {
			assert.False(t, m.IsWall(s))
		}
		assert.Equal(t, Part1Start, m.StartState())
		assert.Equal(t, 0.99, m.DiscountFactor())
	})

	t.Run("Outcome probabilities sum to one and stay inside the maze", func(t *testing.T) {
		m, err := New(Part1Maze(), Part1Start, 0.99)
		require.NoError(t, err)

		for _, s := range m.States() {
			for _, a := range m.ActionsAt(s) {
				outcomes := m.Outcomes(s, a)
				require.Len(t, outcomes, 3)

				total := 0.0
				for _, o := range outcomes {
					total += m.TransitionModel(s, a, o.Actual)
					assert.False(t, m.IsWall(o.Next), "state %v action %v leads to %v", s, a, o.Next)
				}
				assert.InDelta(t, 1.0, total, 1e-12)
			}
		}
	})

	t.Run("Drift is perpendicular, never backwards", func(t *testing.T) {
		m, err := New([][]Cell{
			{Empty, Empty, Empty},
			{Empty, Empty, Empty},
			{Empty, Empty, Empty},
		}, Position{Row: 1, Col: 1}, 0.9)
		require.NoError(t, err)
		center := Position{Row: 1, Col: 1}

		assert.Equal(t, []mdp.Outcome[Position]{
			{Actual: mdp.Up, Next: Position{Row: 0, Col: 1}, Probability: 0.8},
			{Actual: mdp.Left, Next: Position{Row: 1, Col: 0}, Probability: 0.1},
			{Actual: mdp.Right, Next: Position{Row: 1, Col: 2}, Probability: 0.1},
		}, m.Outcomes(center, mdp.Up))
		assert.Equal(t, []mdp.Outcome[Position]{
			{Actual: mdp.Right, Next: Position{Row: 1, Col: 2}, Probability: 0.8},
			{Actual: mdp.Up, Next: Position{Row: 0, Col: 1}, Probability: 0.1},
			{Actual: mdp.Down, Next: Position{Row: 2, Col: 1}, Probability: 0.1},
		}, m.Outcomes(center, mdp.Right))

		assert.Equal(t, 0.0, m.TransitionModel(center, mdp.Up, mdp.Down))
		assert.Equal(t, 0.0, m.TransitionModel(center, mdp.Left, mdp.Right))
		assert.Equal(t, 0.1, m.TransitionModel(center, mdp.Left, mdp.Down))
	})

	t.Run("Moves into walls stay in place", func(t *testing.T) {
		m, err := New([][]Cell{{Green, Wall}}, Position{}, 0.9)
		require.NoError(t, err)
		s := Position{}

		for _, a := range mdp.Actions {
			for _, o := range m.Outcomes(s, a) {
				assert.Equal(t, s, o.Next)
			}
		}
		assert.Equal(t, 1.0, m.Reward(s))
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := New(nil, Position{}, 0.9)
		assert.ErrorIs(t, err, ErrInvalidGrid)

		_, err = New([][]Cell{{Empty, Empty}, {Empty}}, Position{}, 0.9)
		assert.ErrorIs(t, err, ErrInvalidGrid)

		_, err = New([][]Cell{{Wall, Empty}}, Position{}, 0.9)
		assert.ErrorIs(t, err, ErrInvalidStart)

		_, err = New([][]Cell{{Empty}}, Position{Row: 3}, 0.9)
		assert.ErrorIs(t, err, ErrInvalidStart)

		_, err = New([][]Cell{{Empty}}, Position{}, 1)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("Queries outside the state set panic", func(t *testing.T) {
		m, err := New([][]Cell{{Green, Wall}}, Position{}, 0.9)
		require.NoError(t, err)

		assert.Panics(t, func() { m.Reward(Position{Row: 0, Col: 1}) })
		assert.Panics(t, func() { m.TransitionModel(Position{Row: 5, Col: 5}, mdp.Up, mdp.Up) })
	})

	t.Run("Grid is copied", func(t *testing.T) {
		grid := [][]Cell{{Green, Brown}}
		m, err := New(grid, Position{}, 0.9)
		require.NoError(t, err)

		grid[0][0] = Wall
		assert.Equal(t, 1.0, m.Reward(Position{}))
		assert.Equal(t, Green, m.Grid()[0][0])
	})
}

func TestString(t *testing.T) {
	m, err := New([][]Cell{{Green, Wall}}, Position{}, 0.9)
	require.NoError(t, err)

	out := m.String()
	assert.Contains(t, out, "* 1.00|######|")
	assert.True(t, strings.HasPrefix(out, "+------+------+\n"))
}

func TestGenerate(t *testing.T) {
	t.Run("Produces a square grid", func(t *testing.T) {
		grid, err := Generate(10, DefaultDistribution, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		require.Len(t, grid, 10)
		for _, row := range grid {
			assert.Len(t, row, 10)
		}
	})

	t.Run("Same seed, same maze", func(t *testing.T) {
		a, err := Generate(8, DefaultDistribution, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		b, err := Generate(8, DefaultDistribution, rand.New(rand.NewSource(42)))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("Honors the requested categories", func(t *testing.T) {
		grid, err := Generate(5, Distribution{Wall: 1}, rand.New(rand.NewSource(7)))
		require.NoError(t, err)

		for _, row := range grid {
			for _, c := range row {
				assert.Equal(t, Wall, c)
			}
		}
		_, ok := RandomStart(grid, rand.New(rand.NewSource(7)))
		assert.False(t, ok)
	})

	t.Run("Falls back to defaults when probabilities exceed one", func(t *testing.T) {
		d := Distribution{Green: 0.6, Brown: 0.6, Wall: 0.6}
		assert.Equal(t, DefaultDistribution, d.normalized())
		assert.Equal(t, Empty, DefaultDistribution.pick(0.9))
		assert.Equal(t, Green, DefaultDistribution.pick(0.1))
	})

	t.Run("Rejects non-positive sides", func(t *testing.T) {
		_, err := Generate(0, DefaultDistribution, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidSide)
	})
}

func TestSpecFile(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		spec := Spec{
			Start:    Part1Start,
			Discount: 0.95,
			Grid:     append(Part1Maze(), []Cell{RewardCell(2.5), Wall, Empty, Empty, Empty, Empty}),
		}

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, spec))

		decoded, err := Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, spec, decoded)
	})

	t.Run("Decodes letters and numbers", func(t *testing.T) {
		doc := "start: {row: 0, col: 1}\ngrid:\n  - [W, -0.5, G]\n  - [B, E, wall]\n"

		spec, err := Decode(strings.NewReader(doc))
		require.NoError(t, err)

		assert.Equal(t, [][]Cell{{Wall, RewardCell(-0.5), Green}, {Brown, Empty, Wall}}, spec.Grid)

		m, err := spec.Build(0.9)
		require.NoError(t, err)
		assert.Equal(t, 0.9, m.DiscountFactor())
		assert.Len(t, m.States(), 4)
	})

	t.Run("Rejects unknown cells", func(t *testing.T) {
		_, err := Decode(strings.NewReader("grid:\n  - [X]\n"))
		assert.Error(t, err)
	})
}

func TestCellJSON(t *testing.T) {
	var grid [][]Cell
	require.NoError(t, json.Unmarshal([]byte(`[["G", "wall", -0.5], [1, "E", "B"]]`), &grid))

	assert.Equal(t, [][]Cell{{Green, Wall, RewardCell(-0.5)}, {Green, Empty, Brown}}, grid)

	encoded, err := json.Marshal([]Cell{Wall, RewardCell(2)})
	require.NoError(t, err)
	assert.JSONEq(t, `["W", 2]`, string(encoded))

	var row []Cell
	assert.Error(t, json.Unmarshal([]byte(`["X"]`), &row))
}
