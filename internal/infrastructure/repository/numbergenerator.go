package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/biztime"
	"stagedesk/internal/shared/db"
)

// TicketNumberGenerator derives the per-day sequence from stored ticket
// rows. The unique index on tickets.number is the final arbiter; callers
// retry the whole creation path on a duplicate.
type TicketNumberGenerator struct {
	db *gorm.DB
}

func NewTicketNumberGenerator(gdb *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{db: gdb}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context, role authorization.UserRole) (string, error) {
	prefix := ticket.NumberPrefix(role)
	dateKey := biztime.NowUTC().Format("20060102")

	tx := db.GetTxFromContext(ctx, g.db)

	var last string
	err := tx.
		Table("tickets").
		Select("number").
		Where("number LIKE ?", fmt.Sprintf("%s-%s-%%", prefix, dateKey)).
		Order("number DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to read last ticket number: %w", err)
	}

	next := 1
	if last != "" {
		var seq int
		if _, err := fmt.Sscanf(last, prefix+"-"+dateKey+"-%d", &seq); err == nil {
			next = seq + 1
		}
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, dateKey, next), nil
}
