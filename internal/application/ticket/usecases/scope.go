package usecases

import (
	"context"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
)

var errForbiddenTicket = errors.NewForbiddenError("you do not have access to this ticket")

// VisibilityResolver turns an actor into the row-level scope applied to every
// ticket read: admin sees all, a manager sees their own plus their managed
// team's, everyone else only their own.
type VisibilityResolver struct {
	userRepo user.UserRepository
}

func NewVisibilityResolver(userRepo user.UserRepository) *VisibilityResolver {
	return &VisibilityResolver{userRepo: userRepo}
}

func (r *VisibilityResolver) ScopeFor(ctx context.Context, actor authorization.Actor) (ticket.VisibilityScope, error) {
	if actor.Role.IsAdmin() {
		return ticket.ScopeAll(), nil
	}

	ids := []uint{actor.ID}
	if actor.IsManager {
		team, err := r.userRepo.FindByManager(ctx, actor.ID)
		if err != nil {
			return ticket.VisibilityScope{}, err
		}
		for _, member := range team {
			ids = append(ids, member.ID())
		}
	}

	return ticket.ScopeUsers(ids...), nil
}

// EnsureVisible returns a forbidden error when the actor may not see the
// ticket under the row-level visibility rule.
func (r *VisibilityResolver) EnsureVisible(ctx context.Context, actor authorization.Actor, t *ticket.Ticket) error {
	teamIDs, err := r.TeamIDs(ctx, actor)
	if err != nil {
		return err
	}
	if !authorization.CanViewTicket(actor, t.CreatedBy(), t.AssignedTo(), teamIDs) {
		return errForbiddenTicket
	}
	return nil
}

// TeamIDs returns the IDs of the users the actor manages, nil for
// non-managers.
func (r *VisibilityResolver) TeamIDs(ctx context.Context, actor authorization.Actor) ([]uint, error) {
	if !actor.IsManager {
		return nil, nil
	}
	team, err := r.userRepo.FindByManager(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(team))
	for i, member := range team {
		ids[i] = member.ID()
	}
	return ids, nil
}
