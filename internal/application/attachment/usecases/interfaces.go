package usecases

import "context"

type UploadAttachmentsExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentsCommand) (*UploadAttachmentsResult, error)
}

type RequestDeletionExecutor interface {
	Execute(ctx context.Context, cmd RequestDeletionCommand) (*DeletionRequestResult, error)
}

type ApproveDeletionExecutor interface {
	Execute(ctx context.Context, cmd ApproveDeletionCommand) (*ApproveDeletionResult, error)
}

type RejectDeletionExecutor interface {
	Execute(ctx context.Context, cmd RejectDeletionCommand) (*DeletionRequestResult, error)
}

type ConfirmDeletionExecutor interface {
	Execute(ctx context.Context, cmd ConfirmDeletionCommand) (*ConfirmDeletionResult, error)
}

type ListPendingDeletionsExecutor interface {
	Execute(ctx context.Context, query ListPendingDeletionsQuery) (*DeletionRequestList, error)
}

type ListMyDeletionRequestsExecutor interface {
	Execute(ctx context.Context, query ListMyDeletionRequestsQuery) (*DeletionRequestList, error)
}
