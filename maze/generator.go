package maze

import (
	"errors"
	"math/rand"
)

// ErrInvalidSide is returned when a maze is requested with a non-positive side.
var ErrInvalidSide = errors.New("maze side length must be positive")

// Distribution holds the probability of placing each object category in a
// generated maze. Whatever probability is left over is given to empty squares.
type Distribution struct {
	Green float64 `json:"green" yaml:"green"` // Probability of a green (+1) square
	Brown float64 `json:"brown" yaml:"brown"` // Probability of a brown (-1) square
	Wall  float64 `json:"wall" yaml:"wall"`   // Probability of a wall
}

// DefaultDistribution places each category with probability 1/6, leaving
// half of the maze empty.
var DefaultDistribution = Distribution{Green: 1.0 / 6, Brown: 1.0 / 6, Wall: 1.0 / 6}

// normalized returns d, or DefaultDistribution when d is not a valid
// distribution (a negative entry or a sum above 1).
func (d Distribution) normalized() Distribution {
	if d.Green < 0 || d.Brown < 0 || d.Wall < 0 || d.Green+d.Brown+d.Wall > 1 {
		return DefaultDistribution
	}
	return d
}

// Generate returns a square grid with random placement of objects drawn from rng.
//
// Object allocation: |-Green-|-Brown-|-Wall-|-------Empty-------|
func Generate(side int, d Distribution, rng *rand.Rand) ([][]Cell, error) {
	if side <= 0 {
		return nil, ErrInvalidSide
	}
	d = d.normalized()

	grid := make([][]Cell, side)
	for row := range grid {
		grid[row] = make([]Cell, side)
		for col := range grid[row] {
			grid[row][col] = d.pick(rng.Float64())
		}
	}
	return grid, nil
}

// pick maps a uniform sample in [0, 1) to a cell category.
func (d Distribution) pick(object float64) Cell {
	switch {
	case object < d.Green:
		return Green
	case object < d.Green+d.Brown:
		return Brown
	case object < d.Green+d.Brown+d.Wall:
		return Wall
	default:
		return Empty
	}
}

// RandomStart picks a random accessible position of grid, or reports false
// when the grid has no accessible cell.
func RandomStart(grid [][]Cell, rng *rand.Rand) (Position, bool) {
	var open []Position
	for row := range grid {
		for col := range grid[row] {
			if !grid[row][col].Blocked {
				open = append(open, Position{Row: row, Col: col})
			}
		}
	}
	if len(open) == 0 {
		return Position{}, false
	}
	return open[rng.Intn(len(open))], true
}
