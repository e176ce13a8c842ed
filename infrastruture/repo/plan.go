package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlanRepo handles the persistence of solved plans.
type PlanRepo struct {
	collection *mongo.Collection
}

// NewPlanRepo creates a new PlanRepo with the given MongoDB client, database name, and collection name.
func NewPlanRepo(client *mongo.Client, dbName, collectionName string) *PlanRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PlanRepo{
		collection: collection,
	}
}

// Save inserts or replaces a plan in the repository.
func (r *PlanRepo) Save(ctx context.Context, plan *domain.Plan) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": plan.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, plan, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a plan by its ID.
// Returns domain.ErrPlanNotFound if the plan is not found.
func (r *PlanRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var plan domain.Plan
	if err := r.collection.FindOne(ctx, filter).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &plan, nil
}
