package i

import (
	"context"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/google/uuid"
)

// PlanRepo defines the interface for plan persistence operations.
type PlanRepo interface {
	// Save inserts or replaces a plan in the repository.
	Save(ctx context.Context, plan *domain.Plan) error

	// ByID retrieves a plan by its unique ID.
	// Returns domain.ErrPlanNotFound if no plan has the ID.
	ByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
}
