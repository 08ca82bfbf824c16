package plans

import (
	"context"
	"net/http"
	"strconv"

	"subscription-plans/internal/api/httperr"
	"subscription-plans/internal/apperr"
	"subscription-plans/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PlanService interface {
	CreatePlan(ctx context.Context, callerID uint, name string, price decimal.Decimal) (uint, error)
	UpdatePlan(ctx context.Context, callerID, planID uint, name string, price decimal.Decimal) error
	GetPlan(ctx context.Context, planID uint) (*plans.Plan, error)
	ListPlans(ctx context.Context) ([]plans.Plan, error)
	CalculateProratedUpgradePrice(ctx context.Context, currentPlanID, newPlanID uint, remainingDays int) (decimal.Decimal, error)
	SyncPlans(ctx context.Context, callerID uint, source plans.PriceSource) (plans.SyncResult, error)
}

type Handler struct {
	svc PlanService
	// nil when Stripe is not configured
	prices plans.PriceSource
}

func NewHandler(svc PlanService, prices plans.PriceSource) *Handler {
	return &Handler{svc: svc, prices: prices}
}

// callerID reads the identity resolved by the auth middleware.
func callerID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func planIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) CreatePlan(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		httperr.Write(c, apperr.Unauthorized("User not identified"))
		return
	}

	var input planInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, "Missing or invalid name/price")
		return
	}

	planID, err := h.svc.CreatePlan(c.Request.Context(), userID, input.Name, *input.Price)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"planId": planID})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		httperr.Write(c, apperr.Unauthorized("User not identified"))
		return
	}

	planID, ok := planIDParam(c)
	if !ok {
		httperr.BadRequest(c, "Invalid plan id")
		return
	}

	var input planInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.BadRequest(c, "Missing or invalid name/price")
		return
	}

	if err := h.svc.UpdatePlan(c.Request.Context(), userID, planID, input.Name, *input.Price); err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetPlan(c *gin.Context) {
	planID, ok := planIDParam(c)
	if !ok {
		httperr.BadRequest(c, "Invalid plan id")
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), planID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, BuildPlanDTO(plan))
}

func (h *Handler) ListPlans(c *gin.Context) {
	list, err := h.svc.ListPlans(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}

	out := make([]PlanDTO, 0, len(list))
	for i := range list {
		out = append(out, BuildPlanDTO(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetProratedUpgradePrice(c *gin.Context) {
	var q prorationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "currentPlanId, newPlanId and remainingDays are required")
		return
	}

	price, err := h.svc.CalculateProratedUpgradePrice(c.Request.Context(), q.CurrentPlanID, q.NewPlanID, *q.RemainingDays)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proratedPrice": price.InexactFloat64()})
}
