package plans

import (
	"time"

	"subscription-plans/internal/domain/plans"

	"github.com/shopspring/decimal"
)

type planInput struct {
	Name  string           `json:"name" binding:"required"`
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type prorationQuery struct {
	CurrentPlanID uint `form:"currentPlanId" binding:"required,min=1"`
	NewPlanID     uint `form:"newPlanId" binding:"required,min=1"`
	RemainingDays *int `form:"remainingDays" binding:"required,min=0"`
}

type PlanDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	StripePriceID *string   `json:"stripePriceId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func BuildPlanDTO(p *plans.Plan) PlanDTO {
	return PlanDTO{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.InexactFloat64(),
		StripePriceID: p.StripePriceID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
