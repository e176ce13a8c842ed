package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-planner/config"
	"github.com/beka-birhanu/vinom-planner/logger"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	appLogger *logger.ColorLogger
	noColor   bool

	rootCmd = &cobra.Command{
		Use:   "vinom-planner",
		Short: "Plans optimal routes through stochastic grid mazes",
		Long: `vinom-planner solves grid mazes modelled as Markov decision processes
with value iteration and policy iteration, and serves the solvers over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			appLogger, err = newLogger("APP", config.ColorGreen)
			if err != nil {
				return err
			}

			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
}

// newLogger creates a component logger honoring --no-color.
func newLogger(prefix string, color aurora.Color) (*logger.ColorLogger, error) {
	var opts []logger.Option
	if noColor {
		opts = append(opts, logger.WithoutColors())
	}
	return logger.New(prefix, color, os.Stdout, opts...)
}
