// Package plannerapi exposes the planning service over HTTP.
package plannerapi

import (
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/beka-birhanu/vinom-planner/maze"
	"github.com/beka-birhanu/vinom-planner/mdp"
	"github.com/beka-birhanu/vinom-planner/report"
	"github.com/google/uuid"
)

// PlanRequest represents a request to solve a maze.
// Cells are category letters (G, B, E, W) or numeric rewards.
type PlanRequest struct {
	Grid             [][]maze.Cell `json:"grid" binding:"required"`
	Start            maze.Position `json:"start"`
	Discount         float64       `json:"discount"`
	Algorithm        string        `json:"algorithm"`
	MaxError         float64       `json:"max_error"`
	EvaluationRounds int           `json:"evaluation_rounds"`
}

func (r PlanRequest) toDomain() domain.PlanRequest {
	return domain.PlanRequest{
		Grid:             r.Grid,
		Start:            r.Start,
		Discount:         r.Discount,
		Algorithm:        r.Algorithm,
		MaxError:         r.MaxError,
		EvaluationRounds: r.EvaluationRounds,
	}
}

// StateResponse is the solution at one maze state.
type StateResponse struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Utility float64   `json:"utility"`
	Action  string    `json:"action"`
	History []float64 `json:"history,omitempty"`
}

// PlanResponse represents a solved maze.
type PlanResponse struct {
	ID         uuid.UUID       `json:"id"`
	Algorithm  string          `json:"algorithm"`
	Discount   float64         `json:"discount"`
	Parameter  float64         `json:"parameter"`
	Iterations int             `json:"iterations"`
	Start      maze.Position   `json:"start"`
	States     []StateResponse `json:"states"`
	Policy     []string        `json:"policy"` // glyph rows, walls drawn as "-"
	CreatedAt  time.Time       `json:"created_at"`
}

func newPlanResponse(plan *domain.Plan, withHistory bool) *PlanResponse {
	resp := &PlanResponse{
		ID:         plan.ID,
		Algorithm:  plan.Algorithm,
		Discount:   plan.Discount,
		Parameter:  plan.Parameter,
		Iterations: plan.Iterations,
		Start:      plan.Start,
		States:     make([]StateResponse, 0, len(plan.States)),
		CreatedAt:  plan.CreatedAt,
	}

	glyphs := make([][]rune, plan.Rows)
	for row := range glyphs {
		glyphs[row] = []rune(strings.Repeat(report.WallGlyph, plan.Cols))
	}

	for _, s := range plan.States {
		state := StateResponse{
			Row:     s.Position.Row,
			Col:     s.Position.Col,
			Utility: s.Utility,
			Action:  s.Action,
		}
		if withHistory {
			state.History = s.History
		}
		resp.States = append(resp.States, state)

		if a, ok := mdp.ParseAction(s.Action); ok {
			glyphs[s.Position.Row][s.Position.Col] = []rune(report.Glyph(a))[0]
		}
	}

	resp.Policy = make([]string, len(glyphs))
	for row, line := range glyphs {
		resp.Policy[row] = string(line)
	}
	return resp
}
