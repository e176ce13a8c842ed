package plannerapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-planner/api/identity"
	"github.com/beka-birhanu/vinom-planner/domain"
	"github.com/beka-birhanu/vinom-planner/service"
	"github.com/beka-birhanu/vinom-planner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlannerController handles maze planning requests.
type PlannerController struct {
	planner i.Planner
	logger  i.Logger
}

// NewPlannerController initializes a PlannerController.
func NewPlannerController(p i.Planner, logger i.Logger) (*PlannerController, error) {
	if p == nil {
		return nil, errors.New("planner is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &PlannerController{
		planner: p,
		logger:  logger,
	}, nil
}

// RegisterPublic registers public routes.
func (pc *PlannerController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (pc *PlannerController) RegisterProtected(route *gin.RouterGroup) {
	plans := route.Group("/plans")
	{
		plans.POST("", pc.plan)
		plans.GET("/:ID", pc.planByID)
	}
}

// plan handles maze solving requests.
func (pc *PlannerController) plan(ctx *gin.Context) {
	var request PlanRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := pc.planner.Plan(ctx.Request.Context(), request.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pc.logger.Error(fmt.Sprintf("Planning: %v", err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while planning"})
		return
	}

	if sub, ok := identity.Subject(ctx); ok {
		pc.logger.Info(fmt.Sprintf("Plan %s created for %s", plan.ID, sub))
	}
	ctx.JSON(http.StatusCreated, newPlanResponse(plan, ctx.Query("history") == "true"))
}

// planByID retrieves a stored plan.
func (pc *PlannerController) planByID(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	plan, err := pc.planner.ByID(ctx.Request.Context(), ID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		pc.logger.Error(fmt.Sprintf("Fetching plan %s: %v", ID, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while fetching plan"})
		return
	}

	ctx.JSON(http.StatusOK, newPlanResponse(plan, ctx.Query("history") == "true"))
}
