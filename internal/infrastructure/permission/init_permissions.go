package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/logger"
)

// InitTicketPermissions seeds role grants for the ticket workflow. The
// lifecycle verbs split by team: growth opens, reopens and closes, ops
// resolves. Record-level visibility is applied per query, not here.
// Manager-only actions additionally require the manager flag, enforced
// by middleware.
func InitTicketPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	teamPolicies := func(role string) [][]string {
		return [][]string{
			{role, authorization.ResourceTicket, authorization.ActionCreate},
			{role, authorization.ResourceTicket, authorization.ActionView},
			{role, authorization.ResourceTicket, authorization.ActionUpdate},
			{role, authorization.ResourceTicket, authorization.ActionAssign},
			{role, authorization.ResourceAttachment, authorization.ActionUpload},
			{role, authorization.ResourceAttachment, authorization.ActionView},
			{role, authorization.ResourceDeletionRequest, authorization.ActionCreate},
			{role, authorization.ResourceDeletionRequest, authorization.ActionView},
			{role, authorization.ResourceDeletionRequest, authorization.ActionReview},
			{role, authorization.ResourceUser, authorization.ActionUpdate},
		}
	}

	policies := teamPolicies(authorization.RoleGrowth.String())
	policies = append(policies, teamPolicies(authorization.RoleOps.String())...)
	policies = append(policies, teamPolicies(authorization.RoleAdmin.String())...)
	policies = append(policies, [][]string{
		{authorization.RoleGrowth.String(), authorization.ResourceTicket, authorization.ActionReopen},
		{authorization.RoleGrowth.String(), authorization.ResourceTicket, authorization.ActionClose},
		{authorization.RoleOps.String(), authorization.ResourceTicket, authorization.ActionResolve},
		{authorization.RoleAdmin.String(), authorization.ResourceTicket, authorization.ActionForceStatus},
		{authorization.RoleAdmin.String(), authorization.ResourceTicket, authorization.ActionDelete},
		{authorization.RoleAdmin.String(), authorization.ResourceAttachment, authorization.ActionDelete},
		{authorization.RoleAdmin.String(), authorization.ResourceUser, authorization.ActionView},
	}...)

	for _, policy := range policies {
		_, err := enforcer.AddPolicy(policy)
		if err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		log.Errorw("failed to save ticket permissions", "error", err)
		return fmt.Errorf("failed to save ticket permissions: %w", err)
	}

	log.Infow("ticket permissions initialized successfully")
	return nil
}

// InitAllPermissions initializes all permission policies
func InitAllPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	if err := InitTicketPermissions(enforcer, log); err != nil {
		return err
	}

	log.Infow("all permissions initialized successfully")
	return nil
}
