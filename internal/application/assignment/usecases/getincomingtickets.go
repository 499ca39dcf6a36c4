package usecases

import (
	"context"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type GetIncomingTicketsQuery struct {
	Actor    authorization.Actor
	Page     int
	PageSize int
}

// GetIncomingTicketsUseCase lists tickets raised by the opposite team that
// are still open and waiting for an assignee.
type GetIncomingTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewGetIncomingTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	logger logger.Interface,
) *GetIncomingTicketsUseCase {
	return &GetIncomingTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *GetIncomingTicketsUseCase) Execute(ctx context.Context, query GetIncomingTicketsQuery) (*TicketPage, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view incoming tickets")
	}

	peers, err := uc.userRepo.FindByRole(ctx, query.Actor.Role.PeerRole())
	if err != nil {
		uc.logger.Errorw("failed to load peer team", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}
	if len(peers) == 0 {
		return &TicketPage{Tickets: []*TicketSummary{}, Page: 1, PageSize: utils.ValidatePagination(query.Page, query.PageSize).PageSize}, nil
	}

	creatorIDs := make([]uint, len(peers))
	for i, p := range peers {
		creatorIDs[i] = p.ID()
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	tickets, total, err := uc.ticketRepo.List(ctx, ticket.Filter{
		Statuses:    []vo.TicketStatus{vo.StatusOpen},
		CreatedByIn: creatorIDs,
		Unassigned:  true,
		Scope:       ticket.ScopeAll(),
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list incoming tickets", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	return &TicketPage{
		Tickets:  newTicketSummaries(tickets),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
