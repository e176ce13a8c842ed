package repo

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/google/uuid"
)

// MemoryPlanRepo keeps plans in process memory.
// It stands in for the MongoDB repository when no database is configured.
type MemoryPlanRepo struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]domain.Plan
}

// NewMemoryPlanRepo creates an empty MemoryPlanRepo.
func NewMemoryPlanRepo() *MemoryPlanRepo {
	return &MemoryPlanRepo{plans: make(map[uuid.UUID]domain.Plan)}
}

// Save inserts or replaces a plan.
func (r *MemoryPlanRepo) Save(_ context.Context, plan *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = *plan
	return nil
}

// ByID retrieves a plan by its ID.
func (r *MemoryPlanRepo) ByID(_ context.Context, id uuid.UUID) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return &plan, nil
}

// Len returns the number of stored plans.
func (r *MemoryPlanRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plans)
}
