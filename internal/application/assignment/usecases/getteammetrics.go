package usecases

import (
	"context"

	ticketuc "stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetTeamMetricsQuery struct {
	Actor authorization.Actor
}

type GetTeamMetricsResult struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	Unassigned int64            `json:"unassigned"`
}

// GetTeamMetricsUseCase reports ticket counts per status over the actor's
// visibility scope, plus the backlog of unassigned tickets.
type GetTeamMetricsUseCase struct {
	ticketRepo ticket.TicketRepository
	visibility *ticketuc.VisibilityResolver
	logger     logger.Interface
}

func NewGetTeamMetricsUseCase(
	ticketRepo ticket.TicketRepository,
	visibility *ticketuc.VisibilityResolver,
	logger logger.Interface,
) *GetTeamMetricsUseCase {
	return &GetTeamMetricsUseCase{
		ticketRepo: ticketRepo,
		visibility: visibility,
		logger:     logger,
	}
}

func (uc *GetTeamMetricsUseCase) Execute(ctx context.Context, query GetTeamMetricsQuery) (*GetTeamMetricsResult, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view team metrics")
	}

	scope, err := uc.visibility.ScopeFor(ctx, query.Actor)
	if err != nil {
		return nil, err
	}

	counts, err := uc.ticketRepo.CountByStatus(ctx, scope)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for status, count := range counts {
		byStatus[status.String()] = count
		total += count
	}

	_, unassigned, err := uc.ticketRepo.List(ctx, ticket.Filter{
		Scope:      scope,
		Unassigned: true,
		Page:       1,
		PageSize:   1,
	})
	if err != nil {
		uc.logger.Errorw("failed to count unassigned tickets", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	return &GetTeamMetricsResult{
		Total:      total,
		ByStatus:   byStatus,
		Unassigned: unassigned,
	}, nil
}
