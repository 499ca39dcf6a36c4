package authorization

// Resource and action names used by the policy. Grants for these live in the
// casbin policy table and are seeded at startup.
const (
	ResourceTicket          = "ticket"
	ResourceAttachment      = "attachment"
	ResourceDeletionRequest = "deletion_request"
	ResourceUser            = "user"

	ActionCreate      = "create"
	ActionView        = "view"
	ActionUpdate      = "update"
	ActionResolve     = "resolve"
	ActionReopen      = "reopen"
	ActionClose       = "close"
	ActionForceStatus = "force_status"
	ActionDelete      = "delete"
	ActionAssign      = "assign"
	ActionUpload      = "upload"
	ActionReview      = "review"
)

// Actor is the authenticated principal a policy decision is made for.
type Actor struct {
	ID        uint
	Role      UserRole
	IsManager bool
}

// Enforcer answers whether a role holds a grant for an action on a resource.
type Enforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

// Policy is the single place operations ask "may this actor do that". Static
// role grants are delegated to the enforcer; ownership and manager rules that
// depend on row data are expressed here.
type Policy struct {
	enforcer Enforcer
}

func NewPolicy(enforcer Enforcer) *Policy {
	return &Policy{enforcer: enforcer}
}

// Can reports whether the actor's role holds the (resource, action) grant.
func (p *Policy) Can(actor Actor, resource string, action string) (bool, error) {
	return p.enforcer.Enforce(actor.Role.String(), resource, action)
}

// CanManageUser reports whether the actor may administer the target user
// (toggle active, auto-assign). Allowed for admin or the target's direct
// manager.
func CanManageUser(actor Actor, targetManagedBy *uint) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	if !actor.IsManager {
		return false
	}
	return targetManagedBy != nil && *targetManagedBy == actor.ID
}

// CanViewTicket applies the row-level visibility rule: creators and assignees
// always see their tickets, managers additionally see their team's, admin
// sees all. teamIDs is the set of user IDs managed by the actor (nil for
// non-managers).
func CanViewTicket(actor Actor, creatorID uint, assigneeID *uint, teamIDs []uint) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	if creatorID == actor.ID {
		return true
	}
	if assigneeID != nil && *assigneeID == actor.ID {
		return true
	}
	if actor.IsManager {
		for _, id := range teamIDs {
			if creatorID == id {
				return true
			}
			if assigneeID != nil && *assigneeID == id {
				return true
			}
		}
	}
	return false
}
