package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotPersisted is returned by Insert when the store reports that no row was
// written, either because zero rows came back or because a constraint rejected it.
var ErrNotPersisted = errors.New("plan not persisted")

// Repository is the persistence surface the Service depends on.
//
// UpdateByID returns every row the update touched; an empty slice means no plan
// matched the id. FindByID and FindByStripePriceID return (nil, nil) when nothing
// matches.
type Repository interface {
	Insert(ctx context.Context, p Plan) (*Plan, error)
	UpdateByID(ctx context.Context, id uint, name string, price decimal.Decimal, updatedAt time.Time) ([]Plan, error)
	FindByID(ctx context.Context, id uint) (*Plan, error)
	FindByStripePriceID(ctx context.Context, priceID string) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
}

// Store implements Repository on top of gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, p Plan) (*Plan, error) {
	p.ID = 0

	res := s.db.WithContext(ctx).Create(&p)
	if res.Error != nil {
		// Requires gorm.Config.TranslateError.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("%w: %v", ErrNotPersisted, res.Error)
		}
		return nil, fmt.Errorf("insert plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotPersisted
	}

	return &p, nil
}

func (s *Store) UpdateByID(ctx context.Context, id uint, name string, price decimal.Decimal, updatedAt time.Time) ([]Plan, error) {
	var updated []Plan

	err := s.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"price":      price,
			"updated_at": updatedAt,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update plan %d: %w", id, err)
	}

	return updated, nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*Plan, error) {
	var p Plan
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find plan %d: %w", id, err)
	}
	return &p, nil
}

func (s *Store) FindByStripePriceID(ctx context.Context, priceID string) (*Plan, error) {
	var p Plan
	err := s.db.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find plan by stripe price %s: %w", priceID, err)
	}
	return &p, nil
}

func (s *Store) List(ctx context.Context) ([]Plan, error) {
	var list []Plan
	if err := s.db.WithContext(ctx).Order("price ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return list, nil
}
