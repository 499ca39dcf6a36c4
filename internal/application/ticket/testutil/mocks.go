// Package testutil provides in-memory mock implementations for testing the
// ticket, assignment and attachment application layers.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/logger"
)

// NewTestTxManager returns a TransactionManager backed by an in-memory
// sqlite database. The mocks ignore the transaction handle, so this only
// provides commit/rollback plumbing for use cases that run transactions.
func NewTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	return db.NewTransactionManager(gdb)
}

// MockTicketRepository is an in-memory implementation of ticket.TicketRepository.
type MockTicketRepository struct {
	mu       sync.RWMutex
	tickets  map[uint]*ticket.Ticket
	byNumber map[string]*ticket.Ticket
	nextID   uint

	saveError   error
	updateError error
	deleteError error
	findError   error
	listError   error
	countError  error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		tickets:  make(map[uint]*ticket.Ticket),
		byNumber: make(map[string]*ticket.Ticket),
	}
}

func (m *MockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	if t.ID() == 0 {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.tickets[t.ID()] = t
	m.byNumber[t.Number()] = t
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	if _, exists := m.tickets[t.ID()]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.tickets[t.ID()] = t
	m.byNumber[t.Number()] = t
	return nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}
	t, exists := m.tickets[ticketID]
	if !exists {
		return gorm.ErrRecordNotFound
	}
	delete(m.byNumber, t.Number())
	delete(m.tickets, ticketID)
	return nil
}

func (m *MockTicketRepository) FindByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	t, exists := m.tickets[ticketID]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *MockTicketRepository) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	t, exists := m.byNumber[number]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (m *MockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	var matched []*ticket.Ticket
	for _, t := range m.tickets {
		if !matchesFilter(t, filter) {
			continue
		}
		matched = append(matched, t)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Priority().SeverityRank() != matched[j].Priority().SeverityRank() {
			return matched[i].Priority().SeverityRank() < matched[j].Priority().SeverityRank()
		}
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	total := int64(len(matched))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= len(matched) {
			return nil, total, nil
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func matchesFilter(t *ticket.Ticket, filter ticket.Filter) bool {
	if !filter.Scope.All {
		visible := filter.Scope.Contains(t.CreatedBy())
		if !visible && t.AssignedTo() != nil {
			visible = filter.Scope.Contains(*t.AssignedTo())
		}
		if !visible {
			return false
		}
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, s := range filter.Statuses {
			if t.Status() == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.Priorities) > 0 {
		found := false
		for _, p := range filter.Priorities {
			if t.Priority() == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.BrandName != "" && !strings.Contains(strings.ToLower(t.BrandName()), strings.ToLower(filter.BrandName)) {
		return false
	}
	if filter.CreatedBy != nil && t.CreatedBy() != *filter.CreatedBy {
		return false
	}
	if len(filter.CreatedByIn) > 0 {
		found := false
		for _, id := range filter.CreatedByIn {
			if t.CreatedBy() == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Unassigned {
		if t.AssignedTo() != nil {
			return false
		}
	} else if filter.AssignedTo != nil {
		if t.AssignedTo() == nil || *t.AssignedTo() != *filter.AssignedTo {
			return false
		}
	}
	if filter.DateFrom != nil && t.CreatedAt().Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && t.CreatedAt().After(*filter.DateTo) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.Number()), needle) &&
			!strings.Contains(strings.ToLower(t.BrandName()), needle) &&
			!strings.Contains(strings.ToLower(t.Description()), needle) {
			return false
		}
	}
	return true
}

func (m *MockTicketRepository) CountByAssigneeInStatuses(ctx context.Context, assigneeIDs []uint, statuses []vo.TicketStatus) (map[uint]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return nil, m.countError
	}

	counts := make(map[uint]int64, len(assigneeIDs))
	for _, id := range assigneeIDs {
		counts[id] = 0
	}
	for _, t := range m.tickets {
		if t.AssignedTo() == nil {
			continue
		}
		if _, wanted := counts[*t.AssignedTo()]; !wanted {
			continue
		}
		for _, s := range statuses {
			if t.Status() == s {
				counts[*t.AssignedTo()]++
				break
			}
		}
	}
	return counts, nil
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, scope ticket.VisibilityScope) (map[vo.TicketStatus]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return nil, m.countError
	}

	counts := make(map[vo.TicketStatus]int64)
	for _, t := range m.tickets {
		if !scope.All {
			visible := scope.Contains(t.CreatedBy())
			if !visible && t.AssignedTo() != nil {
				visible = scope.Contains(*t.AssignedTo())
			}
			if !visible {
				continue
			}
		}
		counts[t.Status()]++
	}
	return counts, nil
}

func (m *MockTicketRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockTicketRepository) SetUpdateError(err error) { m.updateError = err }
func (m *MockTicketRepository) SetFindError(err error)   { m.findError = err }
func (m *MockTicketRepository) SetListError(err error)   { m.listError = err }

// AddTicket inserts a ticket directly, assigning an ID when needed.
func (m *MockTicketRepository) AddTicket(t *ticket.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID() == 0 {
		m.nextID++
		_ = t.SetID(m.nextID)
	}
	m.tickets[t.ID()] = t
	m.byNumber[t.Number()] = t
}

// MockActivityRepository is an in-memory implementation of ticket.ActivityRepository.
type MockActivityRepository struct {
	mu         sync.RWMutex
	activities []*ticket.Activity
	nextID     uint

	saveError error
	findError error
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Save(ctx context.Context, a *ticket.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if a.ID() == 0 {
		m.nextID++
		if err := a.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.activities = append(m.activities, a)
	return nil
}

func (m *MockActivityRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*ticket.Activity
	for _, a := range m.activities {
		if a.TicketID() == ticketID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockActivityRepository) SetSaveError(err error) { m.saveError = err }

// ActivitiesFor returns recorded activities for a ticket, insertion order.
func (m *MockActivityRepository) ActivitiesFor(ticketID uint) []*ticket.Activity {
	activities, _ := m.FindByTicketID(context.Background(), ticketID)
	return activities
}

// MockAssignmentRepository is an in-memory implementation of ticket.AssignmentRepository.
type MockAssignmentRepository struct {
	mu          sync.RWMutex
	assignments []*ticket.Assignment
	nextID      uint

	saveError error
}

func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{}
}

func (m *MockAssignmentRepository) Save(ctx context.Context, a *ticket.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if a.ID() == 0 {
		m.nextID++
		if err := a.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *MockAssignmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*ticket.Assignment
	for _, a := range m.assignments {
		if a.TicketID() == ticketID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockAssignmentRepository) SetSaveError(err error) { m.saveError = err }

// AssignmentsFor returns recorded assignments for a ticket, insertion order.
func (m *MockAssignmentRepository) AssignmentsFor(ticketID uint) []*ticket.Assignment {
	assignments, _ := m.FindByTicketID(context.Background(), ticketID)
	return assignments
}

// MockUserRepository is an in-memory implementation of user.UserRepository.
type MockUserRepository struct {
	mu      sync.RWMutex
	users   map[uint]*user.User
	byUUID  map[string]*user.User
	byEmail map[string]*user.User
	nextID  uint

	saveError   error
	updateError error
	findError   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[uint]*user.User),
		byUUID:  make(map[string]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if u.ID() == 0 {
		m.nextID++
		if err := u.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.users[u.ID()] = u
	m.byUUID[u.UUID()] = u
	m.byEmail[u.Email()] = u
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	if _, exists := m.users[u.ID()]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.users[u.ID()] = u
	m.byUUID[u.UUID()] = u
	m.byEmail[u.Email()] = u
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	u, exists := m.users[userID]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, uuid string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	u, exists := m.byUUID[uuid]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	u, exists := m.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *MockUserRepository) FindByManager(ctx context.Context, managerID uint) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*user.User
	for _, u := range m.users {
		if u.ManagedBy() != nil && *u.ManagedBy() == managerID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*user.User
	for _, u := range m.users {
		if u.Role() == role {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (m *MockUserRepository) FindAssignableByRole(ctx context.Context, role authorization.UserRole, lock bool) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*user.User
	for _, u := range m.users {
		if u.Role() != role || !u.IsActive() || u.IsManager() || !u.AutoAssignEnabled() {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].CreatedAt().Before(result[j].CreatedAt())
		}
		return result[i].ID() < result[j].ID()
	})
	return result, nil
}

func (m *MockUserRepository) SetFindError(err error)   { m.findError = err }
func (m *MockUserRepository) SetUpdateError(err error) { m.updateError = err }

// AddUser inserts a user directly, assigning an ID when needed.
func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID() == 0 {
		m.nextID++
		_ = u.SetID(m.nextID)
	}
	m.users[u.ID()] = u
	m.byUUID[u.UUID()] = u
	m.byEmail[u.Email()] = u
}

// MockAttachmentRepository is an in-memory implementation of attachment.AttachmentRepository.
type MockAttachmentRepository struct {
	mu          sync.RWMutex
	attachments map[uint]*attachment.Attachment
	nextID      uint

	saveError   error
	deleteError error
	findError   error
}

func NewMockAttachmentRepository() *MockAttachmentRepository {
	return &MockAttachmentRepository{
		attachments: make(map[uint]*attachment.Attachment),
	}
}

func (m *MockAttachmentRepository) Save(ctx context.Context, a *attachment.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if a.ID() == 0 {
		m.nextID++
		if err := a.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.attachments[a.ID()] = a
	return nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}
	if _, exists := m.attachments[attachmentID]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(m.attachments, attachmentID)
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, attachmentID uint) (*attachment.Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	a, exists := m.attachments[attachmentID]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *MockAttachmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*attachment.Attachment
	for _, a := range m.attachments {
		if a.TicketID() == ticketID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (m *MockAttachmentRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockAttachmentRepository) SetDeleteError(err error) { m.deleteError = err }

// AddAttachment inserts an attachment directly, assigning an ID when needed.
func (m *MockAttachmentRepository) AddAttachment(a *attachment.Attachment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID() == 0 {
		m.nextID++
		_ = a.SetID(m.nextID)
	}
	m.attachments[a.ID()] = a
}

// Exists reports whether the attachment is still stored.
func (m *MockAttachmentRepository) Exists(attachmentID uint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.attachments[attachmentID]
	return exists
}

// MockDeletionRequestRepository is an in-memory implementation of
// attachment.DeletionRequestRepository.
type MockDeletionRequestRepository struct {
	mu       sync.RWMutex
	requests map[uint]*attachment.DeletionRequest
	nextID   uint

	saveError   error
	updateError error
	findError   error
}

func NewMockDeletionRequestRepository() *MockDeletionRequestRepository {
	return &MockDeletionRequestRepository{
		requests: make(map[uint]*attachment.DeletionRequest),
	}
}

func (m *MockDeletionRequestRepository) Save(ctx context.Context, r *attachment.DeletionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	if r.ID() == 0 {
		m.nextID++
		if err := r.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.requests[r.ID()] = r
	return nil
}

func (m *MockDeletionRequestRepository) Update(ctx context.Context, r *attachment.DeletionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	if _, exists := m.requests[r.ID()]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.requests[r.ID()] = r
	return nil
}

func (m *MockDeletionRequestRepository) FindByID(ctx context.Context, requestID uint) (*attachment.DeletionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	r, exists := m.requests[requestID]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *MockDeletionRequestRepository) FindApprovedByAttachment(ctx context.Context, attachmentID, requesterID uint) (*attachment.DeletionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	for _, r := range m.requests {
		if r.AttachmentID() == attachmentID && r.RequesterID() == requesterID && r.Status() == attachment.RequestApproved {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDeletionRequestRepository) FindPendingByApproverRole(ctx context.Context, role authorization.UserRole) ([]*attachment.DeletionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*attachment.DeletionRequest
	for _, r := range m.requests {
		if r.ApproverRole() == role && r.Status() == attachment.RequestPending {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (m *MockDeletionRequestRepository) FindByRequester(ctx context.Context, requesterID uint) ([]*attachment.DeletionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return nil, m.findError
	}
	var result []*attachment.DeletionRequest
	for _, r := range m.requests {
		if r.RequesterID() == requesterID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (m *MockDeletionRequestRepository) HasOpenRequest(ctx context.Context, attachmentID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.findError != nil {
		return false, m.findError
	}
	for _, r := range m.requests {
		if r.AttachmentID() != attachmentID {
			continue
		}
		if r.Status() == attachment.RequestPending || r.Status() == attachment.RequestApproved {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockDeletionRequestRepository) SetSaveError(err error) { m.saveError = err }
func (m *MockDeletionRequestRepository) SetFindError(err error) { m.findError = err }

// AddRequest inserts a deletion request directly, assigning an ID when needed.
func (m *MockDeletionRequestRepository) AddRequest(r *attachment.DeletionRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID() == 0 {
		m.nextID++
		_ = r.SetID(m.nextID)
	}
	m.requests[r.ID()] = r
}

// NotifyCall records a single notification dispatch.
type NotifyCall struct {
	Kind string
	To   string
}

// MockNotifier records notification calls and optionally fails them.
type MockNotifier struct {
	mu    sync.Mutex
	calls []NotifyCall

	err error
}

func NewMockNotifier() *MockNotifier { return &MockNotifier{} }

func (m *MockNotifier) record(kind, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, NotifyCall{Kind: kind, To: to})
	return nil
}

func (m *MockNotifier) NotifyTicketAssigned(to string, t *ticket.Ticket, assignedByName string) error {
	return m.record("ticket_assigned", to)
}

func (m *MockNotifier) NotifyTicketResolved(to string, t *ticket.Ticket) error {
	return m.record("ticket_resolved", to)
}

func (m *MockNotifier) NotifyDeletionApproved(to, ticketNumber, fileName, otpCode string) error {
	return m.record("deletion_approved", to)
}

func (m *MockNotifier) NotifyDeletionRejected(to, ticketNumber, fileName, reason string) error {
	return m.record("deletion_rejected", to)
}

func (m *MockNotifier) SetError(err error) { m.err = err }

// Calls returns the recorded notifications in dispatch order.
func (m *MockNotifier) Calls() []NotifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotifyCall(nil), m.calls...)
}

// MockLogger is a no-op logger.Interface implementation.
type MockLogger struct{}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Debug(msg string, args ...any)                   {}
func (m *MockLogger) Info(msg string, args ...any)                    {}
func (m *MockLogger) Warn(msg string, args ...any)                    {}
func (m *MockLogger) Error(msg string, args ...any)                   {}
func (m *MockLogger) With(args ...any) logger.Interface               { return m }
func (m *MockLogger) Named(name string) logger.Interface              { return m }
func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {}

// MockFileStore records saved files in memory and hands back fake URLs.
type MockFileStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	nextID  int

	saveError error
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{saved: make(map[string][]byte)}
}

func (m *MockFileStore) Save(ctx context.Context, ticketID uint, fileName string, content io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return "", m.saveError
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.nextID++
	url := fmt.Sprintf("https://files.test/tickets/%d/%d_%s", ticketID, m.nextID, fileName)
	m.saved[url] = data
	return url, nil
}

func (m *MockFileStore) Remove(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, url)
	m.removed = append(m.removed, url)
	return nil
}

func (m *MockFileStore) SetSaveError(err error) { m.saveError = err }

// Removed returns the URLs passed to Remove, in call order.
func (m *MockFileStore) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// StoredContent returns the saved bytes for a URL, if any.
func (m *MockFileStore) StoredContent(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.saved[url]
	return data, ok
}
