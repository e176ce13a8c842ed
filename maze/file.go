package maze

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the on-disk description of a maze.
//
//	start: {row: 3, col: 2}
//	discount: 0.99
//	grid:
//	  - [G, W, G, E, E, G]
//	  - [E, B, E, G, W, -0.5]
type Spec struct {
	Start    Position `yaml:"start"`
	Discount float64  `yaml:"discount,omitempty"`
	Grid     [][]Cell `yaml:"grid"`
}

// Build constructs the maze described by s. A zero discount falls back to
// defaultDiscount.
func (s Spec) Build(defaultDiscount float64) (*Maze, error) {
	discount := s.Discount
	if discount == 0 {
		discount = defaultDiscount
	}
	return New(s.Grid, s.Start, discount)
}

// Decode reads a maze spec from r.
func Decode(r io.Reader) (Spec, error) {
	var spec Spec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("decoding maze: %w", err)
	}
	return spec, nil
}

// Encode writes spec to w.
func Encode(w io.Writer, spec Spec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("encoding maze: %w", err)
	}
	return enc.Close()
}

// Load reads the maze spec stored at path.
func Load(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, err
	}
	defer f.Close()

	return Decode(f)
}

// Save writes spec to path, replacing any existing file.
func Save(path string, spec Spec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, spec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
