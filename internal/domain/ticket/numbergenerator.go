package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stagedesk/internal/shared/authorization"
)

// NumberPrefix returns the ticket number prefix encoding the creator's team.
func NumberPrefix(role authorization.UserRole) string {
	switch role {
	case authorization.RoleOps:
		return "OPS"
	case authorization.RoleAdmin:
		return "ADM"
	default:
		return "GROW"
	}
}

// NumberGenerator mints globally unique, immutable ticket numbers whose
// prefix encodes the creator's role.
type NumberGenerator interface {
	Generate(ctx context.Context, role authorization.UserRole) (string, error)
}

// DefaultNumberGenerator keeps per-day counters in memory. Suitable for a
// single process and for tests; production uses the repository-backed
// generator which derives the sequence from stored rows.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context, role authorization.UserRole) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prefix := NumberPrefix(role)
	dateKey := time.Now().UTC().Format("20060102")
	key := prefix + "-" + dateKey

	counter := g.counters[key] + 1
	g.counters[key] = counter

	return fmt.Sprintf("%s-%s-%04d", prefix, dateKey, counter), nil
}
