package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/infrastructure/persistence/mappers"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/db"
)

// ticketPriorityOrder sorts urgent before high before medium before low.
// Constant SQL, no user input reaches it.
const ticketPriorityOrder = "CASE priority WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 ELSE 4 END ASC, created_at DESC"

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "number", "created_by", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

// Delete removes the ticket together with its activities, assignments,
// attachments and deletion requests. The schema carries no FK constraints,
// so the cleanup happens here.
func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketActivityModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket activities: %w", err)
	}
	if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket assignments: %w", err)
	}
	if err := tx.Where("ticket_id = ?", id).Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket attachments: %w", err)
	}
	if err := tx.Where("ticket_id = ?", id).Delete(&models.DeletionRequestModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket deletion requests: %w", err)
	}
	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// applyFilter translates the typed predicate list into parameterized
// conditions. The visibility scope is applied before any explicit filter.
func applyFilter(query *gorm.DB, filter ticket.Filter) *gorm.DB {
	if !filter.Scope.All {
		ids := filter.Scope.UserIDs
		if len(ids) == 0 {
			// empty scope matches nothing
			query = query.Where("1 = 0")
		} else {
			query = query.Where("created_by IN ? OR assigned_to IN ?", ids, ids)
		}
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}
	if len(filter.Priorities) > 0 {
		priorities := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			priorities[i] = p.String()
		}
		query = query.Where("priority IN ?", priorities)
	}
	if filter.BrandName != "" {
		query = query.Where("brand_name LIKE ?", "%"+filter.BrandName+"%")
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if len(filter.CreatedByIn) > 0 {
		query = query.Where("created_by IN ?", filter.CreatedByIn)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Unassigned {
		query = query.Where("assigned_to IS NULL")
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", filter.DateFrom.UnixMilli())
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", filter.DateTo.UnixMilli())
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR brand_name LIKE ? OR description LIKE ?", like, like, like)
	}

	return query
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := applyFilter(tx.Model(&models.TicketModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order(ticketPriorityOrder)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByAssigneeInStatuses(
	ctx context.Context,
	assigneeIDs []uint,
	statuses []vo.TicketStatus,
) (map[uint]int64, error) {
	if len(assigneeIDs) == 0 {
		return map[uint]int64{}, nil
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = s.String()
	}

	type row struct {
		AssignedTo uint
		Count      int64
	}
	var rows []row

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).
		Select("assigned_to, COUNT(*) as count").
		Where("assigned_to IN ?", assigneeIDs)
	if len(statusStrings) > 0 {
		query = query.Where("status IN ?", statusStrings)
	}
	if err := query.Group("assigned_to").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by assignee: %w", err)
	}

	counts := make(map[uint]int64, len(assigneeIDs))
	for _, id := range assigneeIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.AssignedTo] = row.Count
	}

	return counts, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, scope ticket.VisibilityScope) (map[vo.TicketStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).
		Select("status, COUNT(*) as count")
	if !scope.All {
		if len(scope.UserIDs) == 0 {
			return map[vo.TicketStatus]int64{}, nil
		}
		query = query.Where("created_by IN ? OR assigned_to IN ?", scope.UserIDs, scope.UserIDs)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
	}
	return counts, nil
}
