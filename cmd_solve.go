package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/beka-birhanu/vinom-planner/report"
	"github.com/beka-birhanu/vinom-planner/solver"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

// Reference run of the sample maze, solved tightly enough to compare other runs against.
const (
	referenceDiscount = 0.95
	referenceMaxError = 1.5
)

var (
	mazePath   string
	algorithm  string
	discount   float64
	maxError   float64
	numRounds  int
	saveOutput bool
	solveAll   bool
	bonusSide  int
	bonusSeed  int64

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a maze and print utilities and the optimal policy",
		Long: `Solves the maze read from --maze (the 6x6 sample maze by default) with
value iteration, policy iteration or both. With --save the result logs and
utility plots are written to RESULTS_DIR. --all runs the full reference suite
on the sample maze and on a generated bonus maze.`,
		RunE: runSolve,
	}
)

func init() {
	solveCmd.Flags().StringVar(&mazePath, "maze", "", "YAML maze file (defaults to the sample maze)")
	solveCmd.Flags().StringVar(&algorithm, "algorithm", "both", "value_iteration, policy_iteration or both")
	solveCmd.Flags().Float64Var(&discount, "discount", 0, "discount factor (defaults to the maze file or DISCOUNT_FACTOR)")
	solveCmd.Flags().Float64Var(&maxError, "max-error", 0, "value iteration maximum error (defaults to MAX_ERROR)")
	solveCmd.Flags().IntVar(&numRounds, "rounds", 0, "policy evaluation rounds per improvement (defaults to NUM_POLICY_EVALUATION)")
	solveCmd.Flags().BoolVar(&saveOutput, "save", false, "write result logs and plots to RESULTS_DIR")
	solveCmd.Flags().BoolVar(&solveAll, "all", false, "run the reference suite on the sample and a generated maze")
	solveCmd.Flags().IntVar(&bonusSide, "bonus-side", 100, "side of the generated maze used by --all")
	solveCmd.Flags().Int64Var(&bonusSeed, "seed", 0, "seed of the generated maze (defaults to the current time)")
}

// solveTask is a single solver run with its output file names.
type solveTask struct {
	name      string
	maze      *maze.Maze
	algorithm string
	maxError  float64
	rounds    int
}

func runSolve(cmd *cobra.Command, args []string) error {
	if maxError == 0 {
		maxError = cfg.MaxError
	}
	if numRounds == 0 {
		numRounds = cfg.NumPolicyEvaluation
	}

	var tasks []solveTask
	if solveAll {
		suite, err := referenceSuite(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		tasks = suite
	} else {
		m, err := loadMaze()
		if err != nil {
			return err
		}
		tasks, err = tasksFor("", m, algorithm)
		if err != nil {
			return err
		}
	}

	au := aurora.NewAurora(!noColor)
	for _, t := range tasks {
		if err := t.run(cmd.OutOrStdout(), au); err != nil {
			return err
		}
	}
	return nil
}

func loadMaze() (*maze.Maze, error) {
	spec := maze.Spec{Start: maze.Part1Start, Grid: maze.Part1Maze()}
	if mazePath != "" {
		var err error
		if spec, err = maze.Load(mazePath); err != nil {
			return nil, err
		}
	}
	if discount != 0 {
		spec.Discount = discount
	}
	return spec.Build(cfg.DiscountFactor)
}

func tasksFor(prefix string, m *maze.Maze, which string) ([]solveTask, error) {
	vi := solveTask{name: prefix + "value_iteration", maze: m, algorithm: domain.ValueIteration, maxError: maxError}
	pi := solveTask{name: prefix + "policy_iteration", maze: m, algorithm: domain.PolicyIteration, rounds: numRounds}

	switch which {
	case domain.ValueIteration, "vi":
		return []solveTask{vi}, nil
	case domain.PolicyIteration, "pi":
		return []solveTask{pi}, nil
	case "both":
		return []solveTask{vi, pi}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", which)
	}
}

// referenceSuite builds the reference, sample and bonus maze runs.
func referenceSuite(w io.Writer) ([]solveTask, error) {
	reference, err := maze.New(maze.Part1Maze(), maze.Part1Start, referenceDiscount)
	if err != nil {
		return nil, err
	}
	sample, err := maze.New(maze.Part1Maze(), maze.Part1Start, cfg.DiscountFactor)
	if err != nil {
		return nil, err
	}

	seed := bonusSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	grid, err := maze.Generate(bonusSide, maze.DefaultDistribution, rng)
	if err != nil {
		return nil, err
	}
	start, ok := maze.RandomStart(grid, rng)
	if !ok {
		return nil, errors.New("generated maze has no free square")
	}
	bonus, err := maze.New(grid, start, cfg.DiscountFactor)
	if err != nil {
		return nil, err
	}
	appLogger.Info(fmt.Sprintf("Generated %dx%d bonus maze (seed %d)", bonusSide, bonusSide, seed))

	if saveOutput {
		if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
			return nil, err
		}
		spec := maze.Spec{Start: start, Discount: cfg.DiscountFactor, Grid: grid}
		if err := maze.Save(filepath.Join(cfg.ResultsDir, "bonus_maze.yaml"), spec); err != nil {
			return nil, err
		}
	} else if bonusSide <= 20 {
		fmt.Fprintln(w, bonus)
	}

	tasks := []solveTask{{
		name:      "approximate_reference_utilities",
		maze:      reference,
		algorithm: domain.ValueIteration,
		maxError:  referenceMaxError,
	}}
	sampleTasks, _ := tasksFor("", sample, "both")
	bonusTasks, _ := tasksFor("bonus_", bonus, "both")
	tasks = append(tasks, sampleTasks...)
	return append(tasks, bonusTasks...), nil
}

func (t solveTask) run(w io.Writer, au aurora.Aurora) error {
	var (
		result *solver.Result[maze.Position]
		err    error
	)

	start := time.Now()
	switch t.algorithm {
	case domain.PolicyIteration:
		result, err = solver.PolicyIteration[maze.Position](t.maze, t.rounds)
	default:
		result, err = solver.ValueIteration[maze.Position](t.maze, t.maxError)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	appLogger.Info(fmt.Sprintf("%s finished in %s", t.name, time.Since(start)))

	fmt.Fprintln(w, au.Bold(t.name))
	if err := report.LogResult(w, t.maze, result, au); err != nil {
		return err
	}

	if !saveOutput {
		return nil
	}
	if err := report.SaveResult(cfg.ResultsDir, t.name+"_result.txt", t.maze, result); err != nil {
		return err
	}
	if err := report.SavePlot(cfg.ResultsDir, t.name+"_utilities.html", t.name, t.maze.States(), result.History); err != nil {
		return err
	}
	appLogger.Info(fmt.Sprintf("Saved %s results to %s", t.name, cfg.ResultsDir))
	return nil
}
