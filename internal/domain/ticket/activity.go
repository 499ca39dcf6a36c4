package ticket

import (
	"fmt"
	"time"
)

// Action tags the kind of event an activity row records.
type Action string

const (
	ActionCreated           Action = "created"
	ActionUpdated           Action = "updated"
	ActionAssigned          Action = "assigned"
	ActionReassigned        Action = "reassigned"
	ActionResolutionAdded   Action = "resolution_added"
	ActionReopened          Action = "reopened"
	ActionClosed            Action = "closed"
	ActionStatusForced      Action = "status_forced"
	ActionAttachmentAdded   Action = "attachment_added"
	ActionAttachmentDeleted Action = "attachment_deleted"
)

var validActions = map[Action]bool{
	ActionCreated:           true,
	ActionUpdated:           true,
	ActionAssigned:          true,
	ActionReassigned:        true,
	ActionResolutionAdded:   true,
	ActionReopened:          true,
	ActionClosed:            true,
	ActionStatusForced:      true,
	ActionAttachmentAdded:   true,
	ActionAttachmentDeleted: true,
}

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	return validActions[a]
}

// Activity is one append-only audit record. Rows are never mutated or
// deleted; actorID is nil for system-originated events.
type Activity struct {
	id        uint
	ticketID  uint
	actorID   *uint
	action    Action
	comment   string
	payload   map[string]interface{}
	createdAt time.Time
}

func NewActivity(ticketID uint, actorID *uint, action Action, comment string, payload map[string]interface{}) (*Activity, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid activity action: %s", action)
	}

	return &Activity{
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		comment:   comment,
		payload:   payload,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructActivity(
	id uint,
	ticketID uint,
	actorID *uint,
	action Action,
	comment string,
	payload map[string]interface{},
	createdAt time.Time,
) (*Activity, error) {
	if id == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid activity action: %s", action)
	}

	return &Activity{
		id:        id,
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		comment:   comment,
		payload:   payload,
		createdAt: createdAt,
	}, nil
}

func (a *Activity) ID() uint       { return a.id }
func (a *Activity) TicketID() uint { return a.ticketID }
func (a *Activity) ActorID() *uint { return a.actorID }
func (a *Activity) Action() Action { return a.action }
func (a *Activity) Comment() string {
	return a.comment
}
func (a *Activity) Payload() map[string]interface{} {
	if a.payload == nil {
		return nil
	}
	payloadCopy := make(map[string]interface{}, len(a.payload))
	for k, v := range a.payload {
		payloadCopy[k] = v
	}
	return payloadCopy
}
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = id
	return nil
}

// Assignment is the immutable record written for every manual or automatic
// assignment, separate from the activity log.
type Assignment struct {
	id               uint
	ticketID         uint
	assignedTo       uint
	assignedBy       uint
	previousAssignee *uint
	auto             bool
	notes            string
	createdAt        time.Time
}

func NewAssignment(ticketID, assignedTo, assignedBy uint, previousAssignee *uint, auto bool, notes string) (*Assignment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if assignedTo == 0 {
		return nil, fmt.Errorf("assignee ID is required")
	}
	if assignedBy == 0 {
		return nil, fmt.Errorf("assigner ID is required")
	}

	return &Assignment{
		ticketID:         ticketID,
		assignedTo:       assignedTo,
		assignedBy:       assignedBy,
		previousAssignee: previousAssignee,
		auto:             auto,
		notes:            notes,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructAssignment(
	id uint,
	ticketID, assignedTo, assignedBy uint,
	previousAssignee *uint,
	auto bool,
	notes string,
	createdAt time.Time,
) (*Assignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
	}
	return &Assignment{
		id:               id,
		ticketID:         ticketID,
		assignedTo:       assignedTo,
		assignedBy:       assignedBy,
		previousAssignee: previousAssignee,
		auto:             auto,
		notes:            notes,
		createdAt:        createdAt,
	}, nil
}

func (as *Assignment) ID() uint                { return as.id }
func (as *Assignment) TicketID() uint          { return as.ticketID }
func (as *Assignment) AssignedTo() uint        { return as.assignedTo }
func (as *Assignment) AssignedBy() uint        { return as.assignedBy }
func (as *Assignment) PreviousAssignee() *uint { return as.previousAssignee }
func (as *Assignment) Auto() bool              { return as.auto }
func (as *Assignment) Notes() string           { return as.notes }
func (as *Assignment) CreatedAt() time.Time    { return as.createdAt }

func (as *Assignment) SetID(id uint) error {
	if as.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	as.id = id
	return nil
}
