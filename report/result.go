// Package report renders solved mazes as text logs and utility plots.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/beka-birhanu/vinom-planner/mdp"
	"github.com/beka-birhanu/vinom-planner/solver"
	"github.com/logrusorgru/aurora"
)

// WallGlyph marks walls in the policy grid.
const WallGlyph = "-"

var glyphs = map[mdp.Action]string{
	mdp.Up:    "∧",
	mdp.Down:  "v",
	mdp.Left:  "<",
	mdp.Right: ">",
}

// Glyph returns the policy grid symbol of action a.
func Glyph(a mdp.Action) string {
	if g, ok := glyphs[a]; ok {
		return g
	}
	return " "
}

// LogResult writes the iteration count, the utility of every state and the
// policy grid of result to w. Colors are only emitted when au has them enabled.
func LogResult(w io.Writer, m *maze.Maze, result *solver.Result[maze.Position], au aurora.Aurora) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Number of iterations: %d\n", result.Iterations)
	fmt.Fprintln(bw, "---Utility for each state in the maze---")

	current := -1
	for _, s := range m.States() {
		if s.Row != current {
			fmt.Fprintln(bw)
			current = s.Row
		}
		fmt.Fprintf(bw, "%s: %.3f\n", s, result.Utilities[s])
	}

	fmt.Fprintln(bw, "---Optimal policy grid---")
	for row, line := range PolicyGrid(m, result.Policy) {
		cells := make([]string, len(line))
		for col, glyph := range line {
			cells[col] = colorize(au, m, maze.Position{Row: row, Col: col}, glyph)
		}
		fmt.Fprintln(bw, strings.Join(cells, " "))
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// PolicyGrid lays policy out over the maze grid, using WallGlyph for walls.
func PolicyGrid(m *maze.Maze, policy map[maze.Position]mdp.Action) [][]string {
	grid := make([][]string, m.Rows())
	for row := range grid {
		grid[row] = make([]string, m.Cols())
		for col := range grid[row] {
			pos := maze.Position{Row: row, Col: col}
			if m.IsWall(pos) {
				grid[row][col] = WallGlyph
				continue
			}
			grid[row][col] = Glyph(policy[pos])
		}
	}
	return grid
}

// colorize colors a policy glyph by the reward of its cell.
func colorize(au aurora.Aurora, m *maze.Maze, pos maze.Position, glyph string) string {
	if m.IsWall(pos) {
		return au.Faint(glyph).String()
	}

	var v aurora.Value
	switch r := m.Reward(pos); {
	case r > 0:
		v = au.Green(glyph)
	case r < 0 && r != maze.Empty.Reward:
		v = au.Red(glyph)
	default:
		v = au.Reset(glyph)
	}
	if pos == m.StartState() {
		v = au.Bold(v)
	}
	return v.String()
}

// SaveResult writes an uncolored result log to dir/name, creating dir if needed.
func SaveResult(dir, name string, m *maze.Maze, result *solver.Result[maze.Position]) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return LogResult(f, m, result, aurora.NewAurora(false))
}
