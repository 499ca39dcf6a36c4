package usecases

import (
	"context"
	"strings"
	"time"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Actor authorization.Actor

	Statuses   []string
	Priorities []string
	BrandName  string
	CreatedBy  *uint
	AssignedTo *uint
	Unassigned bool
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string

	Page     int
	PageSize int
}

type ListTicketsResult struct {
	Tickets  []*TicketResult `json:"tickets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	visibility *VisibilityResolver
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	visibility *VisibilityResolver,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		visibility: visibility,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}

	results := make([]*TicketResult, 0, len(tickets))
	for _, t := range tickets {
		results = append(results, newTicketResult(t))
	}

	return &ListTicketsResult{
		Tickets:  results,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(ctx context.Context, query ListTicketsQuery) (ticket.Filter, error) {
	var filter ticket.Filter

	for _, raw := range query.Statuses {
		status, err := vo.NewTicketStatus(strings.TrimSpace(raw))
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, raw := range query.Priorities {
		priority, err := vo.NewPriority(strings.TrimSpace(raw))
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priorities = append(filter.Priorities, priority)
	}
	if query.DateFrom != nil && query.DateTo != nil && query.DateTo.Before(*query.DateFrom) {
		return filter, errors.NewValidationError("date_to must not precede date_from")
	}

	scope, err := uc.visibility.ScopeFor(ctx, query.Actor)
	if err != nil {
		return filter, err
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter.BrandName = strings.TrimSpace(query.BrandName)
	filter.CreatedBy = query.CreatedBy
	filter.AssignedTo = query.AssignedTo
	filter.Unassigned = query.Unassigned
	filter.DateFrom = query.DateFrom
	filter.DateTo = query.DateTo
	filter.Search = strings.TrimSpace(query.Search)
	filter.Scope = scope
	filter.Page = pagination.Page
	filter.PageSize = pagination.PageSize

	return filter, nil
}
