package ticket

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	BrandName      string `json:"brand_name" binding:"required,max=200"`
	Description    string `json:"description" binding:"required,max=5000"`
	IssueType      string `json:"issue_type" binding:"required,max=100"`
	ExpectedOutput string `json:"expected_output" binding:"max=5000"`
	Priority       string `json:"priority" binding:"required"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		BrandName:      utils.SanitizeText(r.BrandName),
		Description:    utils.SanitizeText(r.Description),
		IssueType:      utils.SanitizeText(r.IssueType),
		ExpectedOutput: utils.SanitizeText(r.ExpectedOutput),
		Priority:       r.Priority,
		CreatorID:      creatorID,
	}
}

type UpdateTicketRequest struct {
	BrandName       *string `json:"brand_name" binding:"omitempty,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=5000"`
	IssueType       *string `json:"issue_type" binding:"omitempty,max=100"`
	ExpectedOutput  *string `json:"expected_output" binding:"omitempty,max=5000"`
	Priority        *string `json:"priority"`
	CurrentAssignee *uint   `json:"current_assignee"`
}

func (r *UpdateTicketRequest) ToCommand(number string, actor authorization.Actor) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Number:          number,
		Actor:           actor,
		BrandName:       sanitizePtr(r.BrandName),
		Description:     sanitizePtr(r.Description),
		IssueType:       sanitizePtr(r.IssueType),
		ExpectedOutput:  sanitizePtr(r.ExpectedOutput),
		Priority:        r.Priority,
		CurrentAssignee: r.CurrentAssignee,
	}
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := utils.SanitizeText(*s)
	return &clean
}

type ResolveTicketRequest struct {
	Remarks     string `json:"remarks" binding:"required,max=5000"`
	Attachments []uint `json:"attachments"`
}

type ReopenTicketRequest struct {
	Reason string `json:"reason" binding:"required,max=5000"`
}

type CloseTicketRequest struct {
	AcceptanceRemarks string `json:"acceptance_remarks" binding:"max=5000"`
}

type ForceStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=5000"`
}

type ListTicketsRequest struct {
	Statuses   []string
	Priorities []string
	BrandName  string
	CreatedBy  *uint
	AssignedTo *uint
	Unassigned bool
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Page       int
	PageSize   int
}

func (r *ListTicketsRequest) ToQuery(actor authorization.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:      actor,
		Statuses:   r.Statuses,
		Priorities: r.Priorities,
		BrandName:  r.BrandName,
		CreatedBy:  r.CreatedBy,
		AssignedTo: r.AssignedTo,
		Unassigned: r.Unassigned,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		Search:     r.Search,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = constants.DefaultPage
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		BrandName: c.Query("brand_name"),
		Search:    c.Query("search"),
	}

	if statuses := c.Query("status"); statuses != "" {
		req.Statuses = splitCSV(statuses)
	}
	if priorities := c.Query("priority"); priorities != "" {
		req.Priorities = splitCSV(priorities)
	}

	createdBy, err := parseOptionalUint(c, "created_by")
	if err != nil {
		return nil, err
	}
	req.CreatedBy = createdBy

	assignedTo, err := parseOptionalUint(c, "assigned_to")
	if err != nil {
		return nil, err
	}
	req.AssignedTo = assignedTo

	if unassigned := c.Query("unassigned"); unassigned != "" {
		v, err := strconv.ParseBool(unassigned)
		if err != nil {
			return nil, errors.NewValidationError("invalid unassigned flag")
		}
		req.Unassigned = v
	}

	dateFrom, err := parseOptionalTime(c, "date_from")
	if err != nil {
		return nil, err
	}
	req.DateFrom = dateFrom

	dateTo, err := parseOptionalTime(c, "date_to")
	if err != nil {
		return nil, err
	}
	req.DateTo = dateTo

	return req, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseOptionalUint(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key)
	}
	id := uint(v)
	return &id, nil
}

func parseOptionalTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key + ", expected RFC3339 timestamp")
	}
	return &t, nil
}

// TicketResponse is the wire shape for a single ticket.
type TicketResponse struct {
	ID                       uint       `json:"id"`
	Number                   string     `json:"number"`
	BrandName                string     `json:"brand_name"`
	Description              string     `json:"description"`
	IssueType                string     `json:"issue_type"`
	ExpectedOutput           string     `json:"expected_output,omitempty"`
	Priority                 string     `json:"priority"`
	Status                   string     `json:"status"`
	CreatedBy                uint       `json:"created_by"`
	AssignedTo               *uint      `json:"assigned_to"`
	CurrentAssignee          *uint      `json:"current_assignee"`
	ResolutionRemarks        string     `json:"resolution_remarks,omitempty"`
	PrimaryResolutionRemarks string     `json:"primary_resolution_remarks,omitempty"`
	ReopenReason             string     `json:"reopen_reason,omitempty"`
	AcceptanceRemarks        string     `json:"acceptance_remarks,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
	LastStatusChangeAt       time.Time  `json:"last_status_change_at"`
	ResolvedAt               *time.Time `json:"resolved_at,omitempty"`
}

func newTicketResponse(r *usecases.TicketResult) *TicketResponse {
	return &TicketResponse{
		ID:                       r.TicketID,
		Number:                   r.Number,
		BrandName:                r.BrandName,
		Description:              r.Description,
		IssueType:                r.IssueType,
		ExpectedOutput:           r.ExpectedOutput,
		Priority:                 r.Priority,
		Status:                   r.Status,
		CreatedBy:                r.CreatedBy,
		AssignedTo:               r.AssignedTo,
		CurrentAssignee:          r.CurrentAssignee,
		ResolutionRemarks:        r.ResolutionRemarks,
		PrimaryResolutionRemarks: r.PrimaryResolutionRemarks,
		ReopenReason:             r.ReopenReason,
		AcceptanceRemarks:        r.AcceptanceRemarks,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
		LastStatusChangeAt:       r.LastStatusChangeAt,
		ResolvedAt:               r.ResolvedAt,
	}
}

func newTicketResponses(results []*usecases.TicketResult) []*TicketResponse {
	out := make([]*TicketResponse, 0, len(results))
	for _, r := range results {
		out = append(out, newTicketResponse(r))
	}
	return out
}

// TicketDetailResponse bundles a ticket with its attachments.
type TicketDetailResponse struct {
	Ticket      *TicketResponse              `json:"ticket"`
	Attachments []*usecases.AttachmentResult `json:"attachments"`
}
