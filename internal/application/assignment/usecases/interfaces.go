package usecases

import "context"

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error)
}

type AutoAssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AutoAssignTicketCommand) (*AutoAssignTicketResult, error)
}

type GetTeamExecutor interface {
	Execute(ctx context.Context, query GetTeamQuery) (*GetTeamResult, error)
}

type GetTeamMetricsExecutor interface {
	Execute(ctx context.Context, query GetTeamMetricsQuery) (*GetTeamMetricsResult, error)
}

type GetTeamWorkloadExecutor interface {
	Execute(ctx context.Context, query GetTeamWorkloadQuery) (*GetTeamWorkloadResult, error)
}

type GetIncomingTicketsExecutor interface {
	Execute(ctx context.Context, query GetIncomingTicketsQuery) (*TicketPage, error)
}

type GetOutgoingTicketsExecutor interface {
	Execute(ctx context.Context, query GetOutgoingTicketsQuery) (*TicketPage, error)
}

type GetUnassignedTicketsExecutor interface {
	Execute(ctx context.Context, query GetUnassignedTicketsQuery) (*TicketPage, error)
}

type ToggleUserActiveExecutor interface {
	Execute(ctx context.Context, cmd ToggleUserActiveCommand) (*ToggleUserActiveResult, error)
}

type ToggleAutoAssignExecutor interface {
	Execute(ctx context.Context, cmd ToggleAutoAssignCommand) (*ToggleAutoAssignResult, error)
}
