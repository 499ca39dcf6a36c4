package ticket

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/interfaces/http/handlers/testutil"
	"stagedesk/internal/shared/errors"
)

type mockCreateTicketUC struct {
	result *usecases.TicketResult
	err    error
	got    *usecases.CreateTicketCommand
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*usecases.TicketResult, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	result *usecases.TicketResult
	err    error
	got    *usecases.UpdateTicketCommand
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*usecases.TicketResult, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockResolveTicketUC struct {
	result *usecases.TicketResult
	err    error
	got    *usecases.ResolveTicketCommand
}

func (m *mockResolveTicketUC) Execute(_ context.Context, cmd usecases.ResolveTicketCommand) (*usecases.TicketResult, error) {
	m.got = &cmd
	return m.result, m.err
}

type mockReopenTicketUC struct {
	result *usecases.TicketResult
	err    error
}

func (m *mockReopenTicketUC) Execute(_ context.Context, _ usecases.ReopenTicketCommand) (*usecases.TicketResult, error) {
	return m.result, m.err
}

type mockCloseTicketUC struct {
	result *usecases.TicketResult
	err    error
}

func (m *mockCloseTicketUC) Execute(_ context.Context, _ usecases.CloseTicketCommand) (*usecases.TicketResult, error) {
	return m.result, m.err
}

type mockForceStatusUC struct {
	result *usecases.TicketResult
	err    error
}

func (m *mockForceStatusUC) Execute(_ context.Context, _ usecases.ForceStatusCommand) (*usecases.TicketResult, error) {
	return m.result, m.err
}

type mockDeleteTicketUC struct {
	result *usecases.DeleteTicketResult
	err    error
}

func (m *mockDeleteTicketUC) Execute(_ context.Context, _ usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error) {
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *usecases.GetTicketResult
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*usecases.GetTicketResult, error) {
	return m.result, m.err
}

type mockListTicketsUC struct {
	result *usecases.ListTicketsResult
	err    error
	got    *usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = &query
	return m.result, m.err
}

type mockGetActivitiesUC struct {
	result *usecases.GetActivitiesResult
	err    error
}

func (m *mockGetActivitiesUC) Execute(_ context.Context, _ usecases.GetActivitiesQuery) (*usecases.GetActivitiesResult, error) {
	return m.result, m.err
}

type testDeps struct {
	createTicketUC  usecases.CreateTicketExecutor
	updateTicketUC  usecases.UpdateTicketExecutor
	resolveTicketUC usecases.ResolveTicketExecutor
	reopenTicketUC  usecases.ReopenTicketExecutor
	closeTicketUC   usecases.CloseTicketExecutor
	forceStatusUC   usecases.ForceStatusExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	getActivitiesUC usecases.GetActivitiesExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.updateTicketUC,
		deps.resolveTicketUC,
		deps.reopenTicketUC,
		deps.closeTicketUC,
		deps.forceStatusUC,
		deps.deleteTicketUC,
		deps.getTicketUC,
		deps.listTicketsUC,
		deps.getActivitiesUC,
	)
}

func sampleTicketResult() *usecases.TicketResult {
	now := time.Now().UTC()
	return &usecases.TicketResult{
		TicketID:           1,
		Number:             "GROW-20260830-0001",
		BrandName:          "Acme",
		Description:        "Checkout page renders blank",
		IssueType:          "landing_page",
		Priority:           "high",
		Status:             "open",
		CreatedBy:          1,
		CreatedAt:          now,
		UpdatedAt:          now,
		LastStatusChangeAt: now,
	}
}

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: sampleTicketResult()}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		BrandName:   "Acme",
		Description: "Checkout page renders blank",
		IssueType:   "landing_page",
		Priority:    "high",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	require.NotNil(t, mockUC.got)
	assert.Equal(t, uint(1), mockUC.got.CreatorID)
}

func TestTicketHandler_CreateTicket_StripsMarkup(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: sampleTicketResult()}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		BrandName:   "Acme",
		Description: "<script>alert(1)</script>broken layout",
		IssueType:   "landing_page",
		Priority:    "high",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, "broken layout", mockUC.got.Description)
}

func TestTicketHandler_CreateTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := map[string]string{"brand_name": "Acme"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestTicketHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{
		result: &usecases.GetTicketResult{
			Ticket:      sampleTicketResult(),
			Attachments: []*usecases.AttachmentResult{},
		},
	}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/GROW-20260830-0001", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "GROW-20260830-0001")
}

func TestTicketHandler_GetTicket_NotFound(t *testing.T) {
	mockUC := &mockGetTicketUC{err: errors.NewNotFoundError("ticket not found")}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/GROW-99999999-9999", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-99999999-9999")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketHandler_ListTickets_ParsesFilters(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			Tickets:  []*usecases.TicketResult{sampleTicketResult()},
			Total:    1,
			Page:     2,
			PageSize: 10,
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetQueryParams(c, map[string]string{
		"status":     "open,processed",
		"priority":   "high",
		"brand_name": "Acme",
		"unassigned": "true",
		"date_from":  "2026-08-01T00:00:00Z",
		"page":       "2",
		"page_size":  "10",
	})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, mockUC.got)
	assert.Equal(t, []string{"open", "processed"}, mockUC.got.Statuses)
	assert.Equal(t, []string{"high"}, mockUC.got.Priorities)
	assert.Equal(t, "Acme", mockUC.got.BrandName)
	assert.True(t, mockUC.got.Unassigned)
	require.NotNil(t, mockUC.got.DateFrom)
	assert.Equal(t, 2, mockUC.got.Page)
	assert.Equal(t, 10, mockUC.got.PageSize)
}

func TestTicketHandler_ListTickets_InvalidDate(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetQueryParams(c, map[string]string{"date_from": "yesterday"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_ListTickets_InvalidAssignee(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetQueryParams(c, map[string]string{"assigned_to": "bob"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_UpdateTicket_Success(t *testing.T) {
	mockUC := &mockUpdateTicketUC{result: sampleTicketResult()}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})

	desc := "Updated description"
	assignee := uint(4)
	reqBody := UpdateTicketRequest{Description: &desc, CurrentAssignee: &assignee}
	c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/GROW-20260830-0001", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	require.NotNil(t, mockUC.got.CurrentAssignee)
	assert.Equal(t, uint(4), *mockUC.got.CurrentAssignee)
}

func TestTicketHandler_ResolveTicket_Success(t *testing.T) {
	result := sampleTicketResult()
	result.Status = "processed"
	mockUC := &mockResolveTicketUC{result: result}
	handler := newTestTicketHandler(testDeps{resolveTicketUC: mockUC})

	reqBody := ResolveTicketRequest{Remarks: "Replaced the hero image and republished", Attachments: []uint{11, 12}}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/GROW-20260830-0001/resolve", reqBody)
	testutil.SetAuthContext(c, 2, "ops", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.ResolveTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, []uint{11, 12}, mockUC.got.Attachments)
}

func TestTicketHandler_ResolveTicket_MissingRemarks(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/GROW-20260830-0001/resolve", map[string]string{})
	testutil.SetAuthContext(c, 2, "ops", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.ResolveTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_ReopenTicket_InvalidState(t *testing.T) {
	mockUC := &mockReopenTicketUC{err: errors.NewInvalidStateError("only processed tickets can be re-opened")}
	handler := newTestTicketHandler(testDeps{reopenTicketUC: mockUC})

	reqBody := ReopenTicketRequest{Reason: "The fix did not hold"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/GROW-20260830-0001/reopen", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.ReopenTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_CloseTicket_Success(t *testing.T) {
	result := sampleTicketResult()
	result.Status = "closed"
	mockUC := &mockCloseTicketUC{result: result}
	handler := newTestTicketHandler(testDeps{closeTicketUC: mockUC})

	reqBody := CloseTicketRequest{AcceptanceRemarks: "Verified on production"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/GROW-20260830-0001/close", reqBody)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.CloseTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketHandler_ForceStatus_Success(t *testing.T) {
	result := sampleTicketResult()
	result.Status = "closed"
	mockUC := &mockForceStatusUC{result: result}
	handler := newTestTicketHandler(testDeps{forceStatusUC: mockUC})

	reqBody := ForceStatusRequest{Status: "closed", Reason: "stale ticket cleanup"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/GROW-20260830-0001/force-status", reqBody)
	testutil.SetAuthContext(c, 9, "admin", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.ForceStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketHandler_DeleteTicket_Success(t *testing.T) {
	mockUC := &mockDeleteTicketUC{result: &usecases.DeleteTicketResult{Number: "GROW-20260830-0001"}}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/GROW-20260830-0001", nil)
	testutil.SetAuthContext(c, 9, "admin", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.DeleteTicket(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTicketHandler_GetActivities_Success(t *testing.T) {
	mockUC := &mockGetActivitiesUC{
		result: &usecases.GetActivitiesResult{
			Activities: []*usecases.ActivityResult{
				{ID: 1, TicketID: 1, Action: "created", CreatedAt: time.Now().UTC()},
			},
		},
	}
	handler := newTestTicketHandler(testDeps{getActivitiesUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/GROW-20260830-0001/activities", nil)
	testutil.SetAuthContext(c, 1, "growth", false)
	testutil.SetURLParam(c, "number", "GROW-20260830-0001")

	handler.GetActivities(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}
