package usecases

import (
	"context"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type GetOutgoingTicketsQuery struct {
	Actor    authorization.Actor
	Page     int
	PageSize int
}

// GetOutgoingTicketsUseCase lists tickets raised by the manager's own team,
// whoever they ended up assigned to.
type GetOutgoingTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewGetOutgoingTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	logger logger.Interface,
) *GetOutgoingTicketsUseCase {
	return &GetOutgoingTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *GetOutgoingTicketsUseCase) Execute(ctx context.Context, query GetOutgoingTicketsQuery) (*TicketPage, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view outgoing tickets")
	}

	creatorIDs := []uint{query.Actor.ID}
	team, err := uc.userRepo.FindByManager(ctx, query.Actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to load team", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}
	for _, member := range team {
		creatorIDs = append(creatorIDs, member.ID())
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	tickets, total, err := uc.ticketRepo.List(ctx, ticket.Filter{
		CreatedByIn: creatorIDs,
		Scope:       ticket.ScopeAll(),
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list outgoing tickets", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	return &TicketPage{
		Tickets:  newTicketSummaries(tickets),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
