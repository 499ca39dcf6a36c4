package usecases

import (
	"context"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetTeamWorkloadQuery struct {
	Actor authorization.Actor
}

type MemberWorkload struct {
	Member   *TeamMember      `json:"member"`
	ByStatus map[string]int64 `json:"by_status"`
	// Active is the number of tickets in the open/processed/re-opened loop.
	Active int64 `json:"active"`
}

type GetTeamWorkloadResult struct {
	Workloads []*MemberWorkload `json:"workloads"`
}

// GetTeamWorkloadUseCase breaks the team's assigned tickets down per member
// and per status.
type GetTeamWorkloadUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewGetTeamWorkloadUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	logger logger.Interface,
) *GetTeamWorkloadUseCase {
	return &GetTeamWorkloadUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *GetTeamWorkloadUseCase) Execute(ctx context.Context, query GetTeamWorkloadQuery) (*GetTeamWorkloadResult, error) {
	if !query.Actor.IsManager && !query.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may view team workload")
	}

	members, err := uc.membersFor(ctx, query.Actor)
	if err != nil {
		uc.logger.Errorw("failed to load team members", "error", err, "actor_id", query.Actor.ID)
		return nil, err
	}
	if len(members) == 0 {
		return &GetTeamWorkloadResult{Workloads: []*MemberWorkload{}}, nil
	}

	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID()
	}

	perStatus := make(map[vo.TicketStatus]map[uint]int64)
	for _, status := range vo.AllStatuses() {
		counts, err := uc.ticketRepo.CountByAssigneeInStatuses(ctx, ids, []vo.TicketStatus{status})
		if err != nil {
			uc.logger.Errorw("failed to count workload", "error", err, "status", status)
			return nil, err
		}
		perStatus[status] = counts
	}

	workloads := make([]*MemberWorkload, 0, len(members))
	for _, m := range members {
		byStatus := make(map[string]int64, len(perStatus))
		var active int64
		for status, counts := range perStatus {
			byStatus[status.String()] = counts[m.ID()]
			for _, ws := range workloadStatuses {
				if status == ws {
					active += counts[m.ID()]
					break
				}
			}
		}
		workloads = append(workloads, &MemberWorkload{
			Member:   newTeamMember(m),
			ByStatus: byStatus,
			Active:   active,
		})
	}

	return &GetTeamWorkloadResult{Workloads: workloads}, nil
}

func (uc *GetTeamWorkloadUseCase) membersFor(ctx context.Context, actor authorization.Actor) ([]*user.User, error) {
	if !actor.Role.IsAdmin() {
		return uc.userRepo.FindByManager(ctx, actor.ID)
	}

	growth, err := uc.userRepo.FindByRole(ctx, authorization.RoleGrowth)
	if err != nil {
		return nil, err
	}
	ops, err := uc.userRepo.FindByRole(ctx, authorization.RoleOps)
	if err != nil {
		return nil, err
	}
	return append(growth, ops...), nil
}
