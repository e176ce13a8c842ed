package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/google/uuid"
)

// Planner solves mazes and retrieves previously solved plans.
type Planner interface {
	Plan(ctx context.Context, req domain.PlanRequest) (*domain.Plan, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
}

// SolveRecorder receives measurements of the planning service.
type SolveRecorder interface {
	ObserveSolve(algorithm string, elapsed time.Duration, iterations int)
	CacheLookup(hit bool)
}

// Logger is the component logger every service writes to.
type Logger interface {
	Info(string)
	Warn(string)
	Error(string)
}
