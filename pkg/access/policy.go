package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// ErrForbidden is returned when the caller is authenticated but the policy
// denies the action.
var ErrForbidden = errors.New("forbidden")

// Decide is the whole policy. Admins may do anything; everyone else may
// only read a server they hold a grant on.
func Decide(user *model.User, action Action, granted bool) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	return action == ActionRead && granted
}

// Policy answers access questions by consulting the grant store.
type Policy struct {
	grants store.GrantStore
}

func NewPolicy(grants store.GrantStore) *Policy {
	return &Policy{grants: grants}
}

// CanAccess reports whether user may perform action on the server. The
// grant store is only consulted when the answer depends on it.
func (p *Policy) CanAccess(ctx context.Context, user *model.User, serverID string, action Action) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.IsAdmin || action != ActionRead {
		return Decide(user, action, false), nil
	}

	granted, err := p.grants.HasGrant(ctx, user.ID, serverID)
	if err != nil {
		return false, fmt.Errorf("failed to look up grant: %w", err)
	}
	return Decide(user, action, granted), nil
}

// CanReadServer is CanAccess for ActionRead.
func (p *Policy) CanReadServer(ctx context.Context, user *model.User, serverID string) (bool, error) {
	return p.CanAccess(ctx, user, serverID, ActionRead)
}

// RequireAdmin returns the user unchanged when they are an admin.
func RequireAdmin(user *model.User) (*model.User, error) {
	if user == nil || !user.IsAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}

// Authorize is Decide for actions that do not target a server, returning
// ErrForbidden on denial.
func Authorize(user *model.User, action Action) error {
	if !Decide(user, action, false) {
		return fmt.Errorf("%w: %s", ErrForbidden, action)
	}
	return nil
}
