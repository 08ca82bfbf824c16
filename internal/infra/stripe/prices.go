package stripe

import (
	"context"
	"strings"

	"subscription-plans/internal/domain/plans"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// PriceSource lists active recurring Stripe prices as plan import candidates.
type PriceSource struct {
	api       *client.API
	productID string
	currency  string
}

// NewPriceSource returns nil when secretKey is empty so callers can treat a missing
// key as "sync disabled".
func NewPriceSource(secretKey, productID string) *PriceSource {
	if strings.TrimSpace(secretKey) == "" {
		return nil
	}
	api := &client.API{}
	api.Init(secretKey, nil)

	return &PriceSource{api: api, productID: productID, currency: "eur"}
}

func (s *PriceSource) ListPrices(ctx context.Context) ([]plans.ExternalPrice, int, error) {
	params := &stripeapi.PriceListParams{}
	params.Context = ctx
	params.Active = stripeapi.Bool(true)
	params.Type = stripeapi.String("recurring")
	params.AddExpand("data.product")

	it := s.api.Prices.List(params)

	var out []plans.ExternalPrice
	skipped := 0
	for it.Next() {
		p, ok := s.toExternalPrice(it.Price())
		if !ok {
			skipped++
			continue
		}
		out = append(out, p)
	}
	if err := it.Err(); err != nil {
		return nil, 0, err
	}

	return out, skipped, nil
}

func (s *PriceSource) toExternalPrice(p *stripeapi.Price) (plans.ExternalPrice, bool) {
	if p == nil || !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
		return plans.ExternalPrice{}, false
	}
	if s.productID != "" && p.Product.ID != s.productID {
		return plans.ExternalPrice{}, false
	}
	if !strings.EqualFold(string(p.Currency), s.currency) {
		return plans.ExternalPrice{}, false
	}
	if p.Metadata["visible"] == "false" {
		return plans.ExternalPrice{}, false
	}

	name := p.Product.Name
	if v := strings.TrimSpace(p.Metadata["plan"]); v != "" {
		name = v
	}

	return plans.ExternalPrice{
		PriceID: p.ID,
		Name:    name,
		// unit_amount is in cents
		Amount: decimal.New(p.UnitAmount, -2),
	}, true
}
