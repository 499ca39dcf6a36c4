package usecases

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetActivitiesQuery struct {
	Number string
	Actor  authorization.Actor
}

type ActivityResult struct {
	ID        uint                   `json:"id"`
	TicketID  uint                   `json:"ticket_id"`
	ActorID   *uint                  `json:"actor_id"`
	Action    string                 `json:"action"`
	Comment   string                 `json:"comment,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type GetActivitiesResult struct {
	Activities []*ActivityResult `json:"activities"`
}

// GetActivitiesUseCase returns the audit trail of a ticket, oldest first.
type GetActivitiesUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	visibility   *VisibilityResolver
	logger       logger.Interface
}

func NewGetActivitiesUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	visibility *VisibilityResolver,
	logger logger.Interface,
) *GetActivitiesUseCase {
	return &GetActivitiesUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		visibility:   visibility,
		logger:       logger,
	}
}

func (uc *GetActivitiesUseCase) Execute(ctx context.Context, query GetActivitiesQuery) (*GetActivitiesResult, error) {
	if len(query.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, query.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	if err := uc.visibility.EnsureVisible(ctx, query.Actor, t); err != nil {
		return nil, err
	}

	activities, err := uc.activityRepo.FindByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket activities", "error", err, "number", query.Number)
		return nil, err
	}

	results := make([]*ActivityResult, 0, len(activities))
	for _, a := range activities {
		results = append(results, &ActivityResult{
			ID:        a.ID(),
			TicketID:  a.TicketID(),
			ActorID:   a.ActorID(),
			Action:    string(a.Action()),
			Comment:   a.Comment(),
			Payload:   a.Payload(),
			CreatedAt: a.CreatedAt(),
		})
	}

	return &GetActivitiesResult{Activities: results}, nil
}
