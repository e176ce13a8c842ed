// Package domain holds the planning service's data model.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/google/uuid"
)

// Algorithm names accepted by the planning service.
const (
	ValueIteration  = "value_iteration"
	PolicyIteration = "policy_iteration"
)

var ErrPlanNotFound = errors.New("plan not found")

// PlanRequest describes a maze to solve and how to solve it.
// Zero values of the tuning fields select the configured defaults.
type PlanRequest struct {
	Grid             [][]maze.Cell
	Start            maze.Position
	Discount         float64
	Algorithm        string
	MaxError         float64 // Used by value iteration.
	EvaluationRounds int     // Used by policy iteration.
}

// StatePlan is the solution at a single maze state.
type StatePlan struct {
	Position maze.Position `json:"position" bson:"position"`
	Utility  float64       `json:"utility" bson:"utility"`
	Action   string        `json:"action" bson:"action"`
	History  []float64     `json:"history,omitempty" bson:"history,omitempty"`
}

// Plan is a solved maze.
type Plan struct {
	ID          uuid.UUID     `json:"id" bson:"_id"`
	Fingerprint string        `json:"fingerprint" bson:"fingerprint"`
	Algorithm   string        `json:"algorithm" bson:"algorithm"`
	Discount    float64       `json:"discount" bson:"discount"`
	Parameter   float64       `json:"parameter" bson:"parameter"` // maximum error or evaluation rounds
	Rows        int           `json:"rows" bson:"rows"`
	Cols        int           `json:"cols" bson:"cols"`
	Start       maze.Position `json:"start" bson:"start"`
	Iterations  int           `json:"iterations" bson:"iterations"`
	States      []StatePlan   `json:"states" bson:"states"`
	CreatedAt   time.Time     `json:"created_at" bson:"createdAt"`
}

// ActionAt returns the planned action at p, or false when p is not a state of the plan.
func (p *Plan) ActionAt(pos maze.Position) (string, bool) {
	for _, s := range p.States {
		if s.Position == pos {
			return s.Action, true
		}
	}
	return "", false
}
