package usecases

import (
	"context"

	ticketuc "stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type GetUnassignedTicketsQuery struct {
	Actor    authorization.Actor
	Page     int
	PageSize int
}

// GetUnassignedTicketsUseCase lists the assignment backlog within the
// actor's visibility scope, most severe first.
type GetUnassignedTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	visibility *ticketuc.VisibilityResolver
	logger     logger.Interface
}

func NewGetUnassignedTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	visibility *ticketuc.VisibilityResolver,
	logger logger.Interface,
) *GetUnassignedTicketsUseCase {
	return &GetUnassignedTicketsUseCase{
		ticketRepo: ticketRepo,
		visibility: visibility,
		logger:     logger,
	}
}

func (uc *GetUnassignedTicketsUseCase) Execute(ctx context.Context, query GetUnassignedTicketsQuery) (*TicketPage, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view the assignment backlog")
	}

	scope, err := uc.visibility.ScopeFor(ctx, query.Actor)
	if err != nil {
		return nil, err
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	tickets, total, err := uc.ticketRepo.List(ctx, ticket.Filter{
		Unassigned: true,
		Scope:      scope,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list unassigned tickets", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	return &TicketPage{
		Tickets:  newTicketSummaries(tickets),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
