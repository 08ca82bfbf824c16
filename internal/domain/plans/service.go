package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subscription-plans/internal/apperr"
	"subscription-plans/internal/authz"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Authorizer gates the mutating operations.
type Authorizer interface {
	RequireAdmin(ctx context.Context, userID uint, action authz.Action) error
}

// Service holds no plan state between calls: every read goes to the Repository and
// concurrent updates of one plan resolve as last write wins in the store.
type Service struct {
	repo   Repository
	gate   Authorizer
	logger *logrus.Logger
	now    func() time.Time
}

func NewService(repo Repository, gate Authorizer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to stamp createdAt/updatedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// timestamps are stored with microsecond precision
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) CreatePlan(ctx context.Context, callerID uint, name string, price decimal.Decimal) (uint, error) {
	if err := s.gate.RequireAdmin(ctx, callerID, authz.ActionCreatePlan); err != nil {
		return 0, err
	}

	plan, err := s.insert(ctx, Plan{Name: name, Price: price})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"plan_id":   plan.ID,
		"caller_id": callerID,
		"price":     plan.Price.String(),
	}).Info("plan created")

	return plan.ID, nil
}

func (s *Service) insert(ctx context.Context, p Plan) (*Plan, error) {
	now := s.stamp()
	p.CreatedAt = now
	p.UpdatedAt = now

	plan, err := s.repo.Insert(ctx, p)
	if errors.Is(err, ErrNotPersisted) {
		return nil, apperr.BadRequest("Plan not created")
	}
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.BadRequest("Plan not created")
	}
	return plan, nil
}

// UpdatePlan replaces name and price of an existing plan.
func (s *Service) UpdatePlan(ctx context.Context, callerID, planID uint, name string, price decimal.Decimal) error {
	if err := s.gate.RequireAdmin(ctx, callerID, authz.ActionUpdatePlan); err != nil {
		return err
	}

	if err := s.update(ctx, planID, name, price); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"plan_id":   planID,
		"caller_id": callerID,
		"price":     price.String(),
	}).Info("plan updated")

	return nil
}

func (s *Service) update(ctx context.Context, planID uint, name string, price decimal.Decimal) error {
	prior, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apperr.NotFound("Plan not found")
	}

	// updatedAt must move forward even when the clock does not
	stamp := s.stamp()
	if !stamp.After(prior.UpdatedAt) {
		stamp = prior.UpdatedAt.Add(time.Microsecond)
	}

	updated, err := s.repo.UpdateByID(ctx, planID, name, price, stamp)
	if err != nil {
		return err
	}
	// An empty result set is the only not-found signal from the store.
	if len(updated) == 0 {
		return apperr.NotFound("Plan not found")
	}
	return nil
}

func (s *Service) GetPlan(ctx context.Context, planID uint) (*Plan, error) {
	plan, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("Plan not found")
	}
	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.repo.List(ctx)
}

// CalculateProratedUpgradePrice fetches both plans and returns
// ProratedUpgradePrice for them. Either plan missing fails with NotFound.
func (s *Service) CalculateProratedUpgradePrice(ctx context.Context, currentPlanID, newPlanID uint, remainingDays int) (decimal.Decimal, error) {
	if remainingDays < 0 {
		return decimal.Zero, apperr.BadRequest("remainingDays must not be negative")
	}

	currentPlan, err := s.GetPlan(ctx, currentPlanID)
	if err != nil {
		return decimal.Zero, err
	}
	newPlan, err := s.GetPlan(ctx, newPlanID)
	if err != nil {
		return decimal.Zero, err
	}

	return ProratedUpgradePrice(currentPlan.Price, newPlan.Price, remainingDays), nil
}

// ExternalPrice is a recurring price imported from the payment provider.
type ExternalPrice struct {
	PriceID string
	Name    string
	Amount  decimal.Decimal
}

// PriceSource lists the prices eligible for import. The int result is the number
// of prices the source filtered out.
type PriceSource interface {
	ListPrices(ctx context.Context) ([]ExternalPrice, int, error)
}

type SyncResult struct {
	Synced  int `json:"synced"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// SyncPlans upserts one plan per external price, keyed by the price id.
func (s *Service) SyncPlans(ctx context.Context, callerID uint, source PriceSource) (SyncResult, error) {
	var result SyncResult

	if err := s.gate.RequireAdmin(ctx, callerID, authz.ActionSyncPlans); err != nil {
		return result, err
	}

	prices, skipped, err := source.ListPrices(ctx)
	if err != nil {
		return result, fmt.Errorf("list external prices: %w", err)
	}
	result.Skipped = skipped

	for _, p := range prices {
		existing, err := s.repo.FindByStripePriceID(ctx, p.PriceID)
		if err != nil {
			return result, err
		}

		if existing == nil {
			priceID := p.PriceID
			_, err := s.insert(ctx, Plan{Name: p.Name, Price: p.Amount, StripePriceID: &priceID})
			if apperr.Is(err, apperr.KindBadRequest) {
				result.Skipped++
				continue
			}
			if err != nil {
				return result, err
			}
			result.Created++
		} else {
			if err := s.update(ctx, existing.ID, p.Name, p.Amount); err != nil {
				return result, err
			}
			result.Updated++
		}
		result.Synced++
	}

	s.logger.WithFields(logrus.Fields{
		"caller_id": callerID,
		"synced":    result.Synced,
		"created":   result.Created,
		"updated":   result.Updated,
		"skipped":   result.Skipped,
	}).Info("plans synced")

	return result, nil
}
