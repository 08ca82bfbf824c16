package plans

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a named, priced subscription tier. Price is the monthly cost in the
// currency's base unit.
type Plan struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:numeric;not null"`
	StripePriceID *string         `gorm:"column:stripe_price_id;uniqueIndex:idx_plans_stripe_price_id"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (Plan) TableName() string { return "plans" }
