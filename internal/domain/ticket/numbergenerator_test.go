package ticket

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagedesk/internal/shared/authorization"
)

func TestNumberPrefix(t *testing.T) {
	assert.Equal(t, "GROW", NumberPrefix(authorization.RoleGrowth))
	assert.Equal(t, "OPS", NumberPrefix(authorization.RoleOps))
	assert.Equal(t, "ADM", NumberPrefix(authorization.RoleAdmin))
	assert.Equal(t, "GROW", NumberPrefix(authorization.UserRole("unknown")))
}

func TestDefaultNumberGenerator_Generate(t *testing.T) {
	gen := NewDefaultNumberGenerator()
	dateKey := time.Now().UTC().Format("20060102")

	first, err := gen.Generate(context.Background(), authorization.RoleGrowth)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("GROW-%s-0001", dateKey), first)

	second, err := gen.Generate(context.Background(), authorization.RoleGrowth)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("GROW-%s-0002", dateKey), second)

	t.Run("sequences are per prefix", func(t *testing.T) {
		opsFirst, err := gen.Generate(context.Background(), authorization.RoleOps)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("OPS-%s-0001", dateKey), opsFirst)
	})
}

func TestDefaultNumberGenerator_Concurrent(t *testing.T) {
	gen := NewDefaultNumberGenerator()

	const workers = 20
	numbers := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := gen.Generate(context.Background(), authorization.RoleGrowth)
			if err != nil {
				t.Errorf("Generate() error = %v", err)
				return
			}
			numbers[i] = n
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, n := range numbers {
		require.True(t, strings.HasPrefix(n, "GROW-"), "number %q has wrong prefix", n)
		assert.False(t, seen[n], "duplicate ticket number %q", n)
		seen[n] = true
	}
}
