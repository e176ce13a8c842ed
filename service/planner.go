package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/beka-birhanu/vinom-planner/service/i"
	"github.com/beka-birhanu/vinom-planner/solver"
	"github.com/google/uuid"
)

const (
	defaultMaxMazeSide      = 100
	defaultDiscount         = 0.99
	defaultMaxError         = 20
	defaultEvaluationRounds = 100
)

var (
	ErrInvalidRequest = errors.New("invalid plan request")
)

// PlannerOptions configures a Planning service.
// Zero numeric values select the package defaults.
type PlannerOptions struct {
	Repo             i.PlanRepo
	Cache            i.PlanCache     // optional
	Recorder         i.SolveRecorder // optional
	Logger           i.Logger
	MaxMazeSide      int
	Discount         float64
	MaxError         float64
	EvaluationRounds int
}

// Planning solves maze requests, caching and storing the resulting plans.
type Planning struct {
	repo     i.PlanRepo
	cache    i.PlanCache
	recorder i.SolveRecorder
	logger   i.Logger

	maxMazeSide      int
	discount         float64
	maxError         float64
	evaluationRounds int
}

// NewPlanningService creates a Planning service.
func NewPlanningService(opts PlannerOptions) (i.Planner, error) {
	if opts.Repo == nil {
		return nil, errors.New("plan repository is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}

	p := &Planning{
		repo:             opts.Repo,
		cache:            opts.Cache,
		recorder:         opts.Recorder,
		logger:           opts.Logger,
		maxMazeSide:      defaultMaxMazeSide,
		discount:         defaultDiscount,
		maxError:         defaultMaxError,
		evaluationRounds: defaultEvaluationRounds,
	}
	if opts.MaxMazeSide > 0 {
		p.maxMazeSide = opts.MaxMazeSide
	}
	if opts.Discount > 0 {
		p.discount = opts.Discount
	}
	if opts.MaxError > 0 {
		p.maxError = opts.MaxError
	}
	if opts.EvaluationRounds > 0 {
		p.evaluationRounds = opts.EvaluationRounds
	}

	return p, nil
}

// Plan solves the requested maze. Identical requests are answered from the
// cache when one is configured; concurrent identical requests solve once.
func (p *Planning) Plan(ctx context.Context, req domain.PlanRequest) (*domain.Plan, error) {
	req = p.withDefaults(req)
	if err := p.validate(req); err != nil {
		return nil, err
	}

	m, err := maze.New(req.Grid, req.Start, req.Discount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	key := fingerprint(req)
	if p.cache != nil {
		if plan, ok := p.cached(ctx, key); ok {
			p.record(true)
			return plan, nil
		}

		unlock, err := p.cache.Lock(ctx, key)
		if err != nil {
			p.logger.Warn(fmt.Sprintf("Solving %s without lock: %v", key, err))
		} else {
			defer unlock()
			// Another instance may have finished while we waited.
			if plan, ok := p.cached(ctx, key); ok {
				p.record(true)
				return plan, nil
			}
		}
		p.record(false)
	}

	plan, err := p.solve(m, req, key)
	if err != nil {
		return nil, err
	}

	if err := p.repo.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, key, plan); err != nil {
			p.logger.Warn(fmt.Sprintf("Caching plan %s: %v", plan.ID, err))
		}
	}

	return plan, nil
}

// ByID retrieves a stored plan.
func (p *Planning) ByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	return p.repo.ByID(ctx, id)
}

func (p *Planning) withDefaults(req domain.PlanRequest) domain.PlanRequest {
	if req.Algorithm == "" {
		req.Algorithm = domain.ValueIteration
	}
	if req.Discount == 0 {
		req.Discount = p.discount
	}
	if req.MaxError == 0 {
		req.MaxError = p.maxError
	}
	if req.EvaluationRounds == 0 {
		req.EvaluationRounds = p.evaluationRounds
	}
	return req
}

func (p *Planning) validate(req domain.PlanRequest) error {
	switch req.Algorithm {
	case domain.ValueIteration:
		if req.MaxError < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, solver.ErrInvalidMaxError)
		}
	case domain.PolicyIteration:
		if req.EvaluationRounds < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, solver.ErrInvalidEvaluationRounds)
		}
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidRequest, req.Algorithm)
	}

	if len(req.Grid) > p.maxMazeSide {
		return fmt.Errorf("%w: maze has %d rows, at most %d allowed", ErrInvalidRequest, len(req.Grid), p.maxMazeSide)
	}
	for _, row := range req.Grid {
		if len(row) > p.maxMazeSide {
			return fmt.Errorf("%w: maze has %d columns, at most %d allowed", ErrInvalidRequest, len(row), p.maxMazeSide)
		}
	}
	return nil
}

// cached looks key up, treating cache failures as misses.
func (p *Planning) cached(ctx context.Context, key string) (*domain.Plan, bool) {
	plan, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("Reading cached plan %s: %v", key, err))
		return nil, false
	}
	return plan, ok
}

func (p *Planning) record(hit bool) {
	if p.recorder != nil {
		p.recorder.CacheLookup(hit)
	}
}

func (p *Planning) solve(m *maze.Maze, req domain.PlanRequest, key string) (*domain.Plan, error) {
	var (
		result    *solver.Result[maze.Position]
		parameter float64
		err       error
	)

	start := time.Now()
	switch req.Algorithm {
	case domain.PolicyIteration:
		parameter = float64(req.EvaluationRounds)
		result, err = solver.PolicyIteration[maze.Position](m, req.EvaluationRounds)
	default:
		parameter = req.MaxError
		result, err = solver.ValueIteration[maze.Position](m, req.MaxError)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	elapsed := time.Since(start)

	if p.recorder != nil {
		p.recorder.ObserveSolve(req.Algorithm, elapsed, result.Iterations)
	}
	p.logger.Info(fmt.Sprintf("Solved %dx%d maze with %s in %d iterations (%s)", m.Rows(), m.Cols(), req.Algorithm, result.Iterations, elapsed))

	plan := &domain.Plan{
		ID:          uuid.New(),
		Fingerprint: key,
		Algorithm:   req.Algorithm,
		Discount:    req.Discount,
		Parameter:   parameter,
		Rows:        m.Rows(),
		Cols:        m.Cols(),
		Start:       m.StartState(),
		Iterations:  result.Iterations,
		States:      make([]domain.StatePlan, 0, len(m.States())),
		CreatedAt:   time.Now().UTC(),
	}
	for _, s := range m.States() {
		plan.States = append(plan.States, domain.StatePlan{
			Position: s,
			Utility:  result.Utilities[s],
			Action:   result.Policy[s].String(),
			History:  result.History[s],
		})
	}

	return plan, nil
}

// fingerprint identifies a request by everything that affects its solution.
func fingerprint(req domain.PlanRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%v|%d,%d|", req.Algorithm, req.Discount, req.Start.Row, req.Start.Col)
	switch req.Algorithm {
	case domain.PolicyIteration:
		fmt.Fprintf(h, "%d|", req.EvaluationRounds)
	default:
		fmt.Fprintf(h, "%v|", req.MaxError)
	}
	for _, row := range req.Grid {
		for _, c := range row {
			fmt.Fprintf(h, "%t:%v;", c.Blocked, c.Reward)
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
