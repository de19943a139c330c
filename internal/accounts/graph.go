package accounts

import (
	"context"
	"errors"
)

// Graph is the ownership view over the account hierarchy, used to
// authorize every artifact operation. Relationships are looked up from
// the repo on each decision rather than cached, so role and supervisor
// changes take effect immediately.
type Graph struct {
	Repo Repo
}

// Authorize decides whether actor may act on resources owned by
// targetOwnerID:
//
//   - admin: always allowed.
//   - developer: allowed on itself (template, credentials) and on bidders
//     it supervises.
//   - bidder: allowed only on itself.
//
// A denial never reveals whether the target id exists.
func (g *Graph) Authorize(ctx context.Context, actor Actor, targetOwnerID string) error {
	if actor.ID == "" || targetOwnerID == "" {
		return ErrUnauthorized
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleBidder:
		if actor.ID == targetOwnerID {
			return nil
		}
		return ErrUnauthorized
	case RoleDeveloper:
		if actor.ID == targetOwnerID {
			return nil
		}
		target, err := g.Repo.GetByID(ctx, targetOwnerID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrUnauthorized
			}
			return err
		}
		if target.Role == RoleBidder && target.SupervisorID == actor.ID {
			return nil
		}
		return ErrUnauthorized
	default:
		return ErrUnauthorized
	}
}

// SupervisorOf returns the developer supervising the given bidder.
func (g *Graph) SupervisorOf(ctx context.Context, bidderID string) (Account, error) {
	bidder, err := g.Repo.GetByID(ctx, bidderID)
	if err != nil {
		return Account{}, err
	}
	if bidder.SupervisorID == "" {
		return Account{}, ErrNotFound
	}
	return g.Repo.GetByID(ctx, bidder.SupervisorID)
}
