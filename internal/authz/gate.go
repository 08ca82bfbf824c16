// Package authz decides whether a caller may mutate the plan catalogue.
//
// The caller's identity is always passed in explicitly; the gate resolves it to a
// user record and checks the record's admin flag on every call, so revoking the
// flag takes effect on the next request.
package authz

import (
	"context"
	"fmt"

	"subscription-plans/internal/apperr"
	"subscription-plans/internal/domain/users"
)

type Action string

const (
	ActionCreatePlan Action = "create"
	ActionUpdatePlan Action = "update"
	ActionSyncPlans  Action = "sync"
)

func (a Action) deniedMessage() string {
	switch a {
	case ActionSyncPlans:
		return "You do not have permission to sync plans"
	default:
		return fmt.Sprintf("You do not have permission to %s a plan", string(a))
	}
}

// UserLookup resolves a user id. A missing user is (nil, nil).
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*users.User, error)
}

type Gate struct {
	users UserLookup
}

func NewGate(lookup UserLookup) *Gate {
	return &Gate{users: lookup}
}

// RequireAdmin returns nil when userID belongs to an administrator and an
// apperr Forbidden otherwise. Lookup failures are returned wrapped.
func (g *Gate) RequireAdmin(ctx context.Context, userID uint, action Action) error {
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve caller %d: %w", userID, err)
	}
	if user == nil || !user.IsAdmin {
		return apperr.Forbidden(action.deniedMessage())
	}
	return nil
}
