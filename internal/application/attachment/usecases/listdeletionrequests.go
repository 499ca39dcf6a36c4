package usecases

import (
	"context"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ListPendingDeletionsQuery struct {
	Actor authorization.Actor
}

type DeletionRequestList struct {
	Requests []*DeletionRequestResult `json:"requests"`
	Total    int                      `json:"total"`
}

// ListPendingDeletionsUseCase returns the review queue for the actor's team:
// pending requests whose approver role matches the actor's role.
type ListPendingDeletionsUseCase struct {
	requestRepo attachment.DeletionRequestRepository
	logger      logger.Interface
}

func NewListPendingDeletionsUseCase(requestRepo attachment.DeletionRequestRepository, logger logger.Interface) *ListPendingDeletionsUseCase {
	return &ListPendingDeletionsUseCase{requestRepo: requestRepo, logger: logger}
}

func (uc *ListPendingDeletionsUseCase) Execute(ctx context.Context, query ListPendingDeletionsQuery) (*DeletionRequestList, error) {
	if !query.Actor.Role.IsValid() {
		return nil, errors.NewValidationError("invalid actor role")
	}

	requests, err := uc.requestRepo.FindPendingByApproverRole(ctx, query.Actor.Role)
	if err != nil {
		uc.logger.Errorw("failed to list pending deletion requests", "error", err, "role", query.Actor.Role.String())
		return nil, err
	}

	return &DeletionRequestList{
		Requests: newDeletionRequestResults(requests),
		Total:    len(requests),
	}, nil
}

type ListMyDeletionRequestsQuery struct {
	Actor authorization.Actor
}

// ListMyDeletionRequestsUseCase returns every request the actor has raised,
// regardless of status.
type ListMyDeletionRequestsUseCase struct {
	requestRepo attachment.DeletionRequestRepository
	logger      logger.Interface
}

func NewListMyDeletionRequestsUseCase(requestRepo attachment.DeletionRequestRepository, logger logger.Interface) *ListMyDeletionRequestsUseCase {
	return &ListMyDeletionRequestsUseCase{requestRepo: requestRepo, logger: logger}
}

func (uc *ListMyDeletionRequestsUseCase) Execute(ctx context.Context, query ListMyDeletionRequestsQuery) (*DeletionRequestList, error) {
	requests, err := uc.requestRepo.FindByRequester(ctx, query.Actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to list deletion requests", "error", err, "requester_id", query.Actor.ID)
		return nil, err
	}

	return &DeletionRequestList{
		Requests: newDeletionRequestResults(requests),
		Total:    len(requests),
	}, nil
}
