package i

import (
	"context"

	"github.com/beka-birhanu/vinom-planner/domain"
)

// PlanCache stores solved plans under a maze fingerprint.
type PlanCache interface {
	// Get returns the cached plan for key and whether one was found.
	Get(ctx context.Context, key string) (*domain.Plan, bool, error)

	// Set caches plan under key.
	Set(ctx context.Context, key string, plan *domain.Plan) error

	// Lock acquires a lock shared by every instance using the cache.
	// The returned function releases it.
	Lock(ctx context.Context, key string) (func(), error)
}
