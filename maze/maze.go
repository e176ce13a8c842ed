/*
Package maze realizes a rectangular grid world with walls as a Markov Decision
Process.

Every accessible cell is a state. An agent that intends to move in a direction
succeeds with probability 0.8 and drifts to either perpendicular direction with
probability 0.1 each; it never moves backwards. Moves into a wall or off the
grid leave the agent where it is. The outcome table is computed once by New and
is read-only afterwards, so a Maze may be shared across solver runs.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-planner/mdp"
)

const (
	intendedProbability = 0.8 // probability of executing the intended action
	driftProbability    = 0.1 // probability of each perpendicular drift
	outcomesPerAction   = 3
)

var (
	ErrInvalidGrid     = errors.New("maze grid must be a non-empty rectangle")
	ErrInvalidStart    = errors.New("start position is not an accessible cell")
	ErrInvalidDiscount = errors.New("discount factor must be in (0, 1)")
)

// Position is a cell coordinate and the state type of the maze MDP.
type Position struct {
	Row int `json:"row" yaml:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" yaml:"col" bson:"col"` // Column index of the cell
}

// String formats the position as (row, col).
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Move returns the neighbouring position in direction a.
func (p Position) Move(a mdp.Action) Position {
	d := Directions[a]
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Directions maps each action to its coordinate delta.
var Directions = [...]Position{
	mdp.Up:    {Row: -1, Col: 0},
	mdp.Down:  {Row: 1, Col: 0},
	mdp.Left:  {Row: 0, Col: -1},
	mdp.Right: {Row: 0, Col: 1},
}

// perpendicular holds the two drift directions of each action.
var perpendicular = [...][2]mdp.Action{
	mdp.Up:    {mdp.Left, mdp.Right},
	mdp.Down:  {mdp.Left, mdp.Right},
	mdp.Left:  {mdp.Up, mdp.Down},
	mdp.Right: {mdp.Up, mdp.Down},
}

type outcomeTable [len(Directions)][outcomesPerAction]mdp.Outcome[Position]

// Maze is a grid world MDP. It implements mdp.MDP[Position].
type Maze struct {
	grid     [][]Cell
	rows     int
	cols     int
	start    Position
	discount float64
	states   []Position
	outcomes map[Position]*outcomeTable
}

var _ mdp.MDP[Position] = (*Maze)(nil)

// New builds the maze MDP for grid. The grid is copied, so later changes by
// the caller do not affect the Maze.
func New(grid [][]Cell, start Position, discount float64) (*Maze, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrInvalidGrid
	}
	if discount <= 0 || discount >= 1 {
		return nil, ErrInvalidDiscount
	}

	m := &Maze{
		rows:     len(grid),
		cols:     len(grid[0]),
		start:    start,
		discount: discount,
		grid:     make([][]Cell, len(grid)),
	}
	for row := range grid {
		if len(grid[row]) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, row, len(grid[row]), m.cols)
		}
		m.grid[row] = append([]Cell(nil), grid[row]...)
	}
	if m.IsWall(start) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStart, start)
	}

	m.outcomes = make(map[Position]*outcomeTable)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			pos := Position{Row: row, Col: col}
			if m.IsWall(pos) {
				continue
			}
			m.states = append(m.states, pos)
			m.outcomes[pos] = m.buildOutcomes(pos)
		}
	}

	return m, nil
}

// buildOutcomes computes the outcomes of every action attempted at pos.
func (m *Maze) buildOutcomes(pos Position) *outcomeTable {
	var table outcomeTable
	for _, a := range mdp.Actions {
		table[a][0] = mdp.Outcome[Position]{Actual: a, Next: m.landing(pos, a), Probability: intendedProbability}
		for i, d := range perpendicular[a] {
			table[a][i+1] = mdp.Outcome[Position]{Actual: d, Next: m.landing(pos, d), Probability: driftProbability}
		}
	}
	return &table
}

// landing returns where an agent at pos ends up after executing a.
func (m *Maze) landing(pos Position, a mdp.Action) Position {
	next := pos.Move(a)
	if m.IsWall(next) {
		return pos
	}
	return next
}

// IsWall reports whether pos is blocked to an agent, i.e. out of bounds or a wall.
func (m *Maze) IsWall(pos Position) bool {
	return pos.Row < 0 || pos.Row >= m.rows ||
		pos.Col < 0 || pos.Col >= m.cols ||
		m.grid[pos.Row][pos.Col].Blocked
}

// table returns the outcome table of s and panics when s is not a state.
func (m *Maze) table(s Position) *outcomeTable {
	t, ok := m.outcomes[s]
	if !ok {
		panic(fmt.Sprintf("maze: %v is not a state", s))
	}
	return t
}

// States returns the accessible cells in row-major order.
func (m *Maze) States() []Position {
	return m.states
}

// Actions returns the full action enumeration.
func (m *Maze) Actions() []mdp.Action {
	return mdp.Actions
}

// ActionsAt returns the actions available in s. Every state exposes all four.
func (m *Maze) ActionsAt(s Position) []mdp.Action {
	m.table(s)
	return mdp.Actions
}

// Outcomes returns the three outcomes of intending a in s: the intended move
// first, followed by the two perpendicular drifts.
func (m *Maze) Outcomes(s Position, intended mdp.Action) []mdp.Outcome[Position] {
	return m.table(s)[intended][:]
}

// DiscountFactor returns γ.
func (m *Maze) DiscountFactor() float64 {
	return m.discount
}

// TransitionModel returns the probability that intending intended in s results
// in actual being executed, or 0 when actual is not a possible outcome.
func (m *Maze) TransitionModel(s Position, intended, actual mdp.Action) float64 {
	for _, o := range m.table(s)[intended] {
		if o.Actual == actual {
			return o.Probability
		}
	}
	return 0
}

// Reward returns the reward stored in cell s.
func (m *Maze) Reward(s Position) float64 {
	m.table(s)
	return m.grid[s.Row][s.Col].Reward
}

// StartState returns the agent's initial position.
func (m *Maze) StartState() Position {
	return m.start
}

// Rows returns the number of grid rows.
func (m *Maze) Rows() int {
	return m.rows
}

// Cols returns the number of grid columns.
func (m *Maze) Cols() int {
	return m.cols
}

// Grid returns a copy of the maze's cells.
func (m *Maze) Grid() [][]Cell {
	grid := make([][]Cell, m.rows)
	for row := range m.grid {
		grid[row] = append([]Cell(nil), m.grid[row]...)
	}
	return grid
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	border := "+" + strings.Repeat("------+", m.cols) + "\n"
	output.WriteString(border)

	for row := 0; row < m.rows; row++ {
		output.WriteString("|")
		for col := 0; col < m.cols; col++ {
			cell := m.grid[row][col]
			pos := Position{Row: row, Col: col}
			switch {
			case cell.Blocked:
				output.WriteString("######")
			case pos == m.start:
				output.WriteString(fmt.Sprintf("*%5.2f", cell.Reward))
			default:
				output.WriteString(fmt.Sprintf("%6.2f", cell.Reward))
			}
			output.WriteString("|")
		}
		output.WriteString("\n")
		output.WriteString(border)
	}

	return output.String()
}
