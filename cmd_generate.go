package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/spf13/cobra"
)

var (
	genSide         int
	genSeed         int64
	genOut          string
	genDistribution maze.Distribution

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a random maze file",
		Long: `Generates a square maze with random green, brown and wall squares and a
random start square, written as YAML to --out or stdout. Probabilities that are
negative or sum past 1 fall back to 1/6 each.`,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().IntVar(&genSide, "side", 6, "side length of the maze")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (defaults to the current time)")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output file (defaults to stdout)")
	generateCmd.Flags().Float64Var(&genDistribution.Green, "green", maze.DefaultDistribution.Green, "probability of a green square")
	generateCmd.Flags().Float64Var(&genDistribution.Brown, "brown", maze.DefaultDistribution.Brown, "probability of a brown square")
	generateCmd.Flags().Float64Var(&genDistribution.Wall, "wall", maze.DefaultDistribution.Wall, "probability of a wall")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, err := maze.Generate(genSide, genDistribution, rng)
	if err != nil {
		return err
	}
	start, ok := maze.RandomStart(grid, rng)
	if !ok {
		return errors.New("generated maze has no free square, try another seed")
	}

	spec := maze.Spec{Start: start, Discount: cfg.DiscountFactor, Grid: grid}
	if genOut == "" {
		return maze.Encode(cmd.OutOrStdout(), spec)
	}
	if err := maze.Save(genOut, spec); err != nil {
		return err
	}
	appLogger.Info(fmt.Sprintf("Wrote %dx%d maze (seed %d) to %s", genSide, genSide, seed, genOut))
	return nil
}
