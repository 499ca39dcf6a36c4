package usecases

import "context"

// Executor interfaces let the HTTP layer depend on behavior instead of
// concrete use case structs, which keeps handler tests mock-friendly.

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*TicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*TicketResult, error)
}

type ResolveTicketExecutor interface {
	Execute(ctx context.Context, cmd ResolveTicketCommand) (*TicketResult, error)
}

type ReopenTicketExecutor interface {
	Execute(ctx context.Context, cmd ReopenTicketCommand) (*TicketResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*TicketResult, error)
}

type ForceStatusExecutor interface {
	Execute(ctx context.Context, cmd ForceStatusCommand) (*TicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetActivitiesExecutor interface {
	Execute(ctx context.Context, query GetActivitiesQuery) (*GetActivitiesResult, error)
}
