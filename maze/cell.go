package maze

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cell represents a single cell in a maze grid.
// A cell is either a wall or an accessible square holding a reward.
type Cell struct {
	Reward  float64 // Reward collected by an agent standing in the cell.
	Blocked bool    // Blocked marks a wall; walls are never states.
}

// The object categories of the classic assignment maze.
var (
	Green = Cell{Reward: +1}    // Green squares with +1 reward.
	Brown = Cell{Reward: -1}    // Brown squares with -1 reward.
	Empty = Cell{Reward: -0.04} // Empty squares with -0.04 reward.
	Wall  = Cell{Blocked: true} // Walls, inaccessible to the agent.
)

// RewardCell returns an accessible cell holding reward r.
func RewardCell(r float64) Cell {
	return Cell{Reward: r}
}

// Symbol returns the one-letter category of the cell, or an empty string when
// the cell does not belong to one of the named categories.
func (c Cell) Symbol() string {
	switch c {
	case Wall:
		return "W"
	case Green:
		return "G"
	case Brown:
		return "B"
	case Empty:
		return "E"
	default:
		return ""
	}
}

// String renders the cell as its category letter or its reward.
func (c Cell) String() string {
	if sym := c.Symbol(); sym != "" {
		return sym
	}
	return strconv.FormatFloat(c.Reward, 'g', -1, 64)
}

// ParseCell converts a textual cell (category letter, "wall" or a number) to a Cell.
func ParseCell(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WALL":
		return Wall, nil
	case "G":
		return Green, nil
	case "B":
		return Brown, nil
	case "E":
		return Empty, nil
	}

	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Cell{}, fmt.Errorf("invalid cell %q", s)
	}
	return RewardCell(r), nil
}

// UnmarshalYAML decodes a cell from a scalar node.
func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cell must be a scalar", node.Line)
	}

	parsed, err := ParseCell(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes named categories as letters and the rest as numbers.
func (c Cell) MarshalYAML() (interface{}, error) {
	if sym := c.Symbol(); sym != "" {
		return sym, nil
	}
	return c.Reward, nil
}

// UnmarshalJSON decodes a cell from a category string or a number.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var text string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	} else {
		text = string(data)
	}

	parsed, err := ParseCell(text)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes named categories as letters and the rest as numbers.
func (c Cell) MarshalJSON() ([]byte, error) {
	if sym := c.Symbol(); sym != "" {
		return json.Marshal(sym)
	}
	return json.Marshal(c.Reward)
}
