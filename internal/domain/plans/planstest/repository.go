// Package planstest provides an in-memory plans.Repository for tests.
package planstest

import (
	"context"
	"sort"
	"sync"
	"time"

	"subscription-plans/internal/domain/plans"

	"github.com/shopspring/decimal"
)

type Repository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]plans.Plan

	// RejectInserts makes Insert behave like a store that wrote no row.
	RejectInserts bool
	// Err, when set, is returned by every call.
	Err error
}

func NewRepository() *Repository {
	return &Repository{nextID: 1, rows: map[uint]plans.Plan{}}
}

func (r *Repository) Insert(_ context.Context, p plans.Plan) (*plans.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	if r.RejectInserts {
		return nil, plans.ErrNotPersisted
	}
	if p.StripePriceID != nil {
		for _, row := range r.rows {
			if row.StripePriceID != nil && *row.StripePriceID == *p.StripePriceID {
				return nil, plans.ErrNotPersisted
			}
		}
	}

	p.ID = r.nextID
	r.nextID++
	r.rows[p.ID] = p

	out := p
	return &out, nil
}

func (r *Repository) UpdateByID(_ context.Context, id uint, name string, price decimal.Decimal, updatedAt time.Time) ([]plans.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	row, ok := r.rows[id]
	if !ok {
		return []plans.Plan{}, nil
	}
	row.Name = name
	row.Price = price
	row.UpdatedAt = updatedAt
	r.rows[id] = row

	return []plans.Plan{row}, nil
}

func (r *Repository) FindByID(_ context.Context, id uint) (*plans.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *Repository) FindByStripePriceID(_ context.Context, priceID string) (*plans.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	for _, row := range r.rows {
		if row.StripePriceID != nil && *row.StripePriceID == priceID {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *Repository) List(_ context.Context) ([]plans.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]plans.Plan, 0, len(r.rows))
	for _, row := range r.rows {
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].Price.Cmp(list[j].Price); c != 0 {
			return c < 0
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Len reports how many plans are stored.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
