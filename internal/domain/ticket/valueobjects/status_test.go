package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TicketStatus
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid open status",
			input:   "open",
			want:    StatusOpen,
			wantErr: false,
		},
		{
			name:    "valid processed status",
			input:   "processed",
			want:    StatusProcessed,
			wantErr: false,
		},
		{
			name:    "valid resolved status",
			input:   "resolved",
			want:    StatusResolved,
			wantErr: false,
		},
		{
			name:    "valid re-opened status",
			input:   "re-opened",
			want:    StatusReopened,
			wantErr: false,
		},
		{
			name:    "valid closed status",
			input:   "closed",
			want:    StatusClosed,
			wantErr: false,
		},
		{
			name:    "invalid status",
			input:   "invalid",
			wantErr: true,
			errMsg:  "invalid ticket status: invalid",
		},
		{
			name:    "reopened without hyphen",
			input:   "reopened",
			wantErr: true,
			errMsg:  "invalid ticket status",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
			errMsg:  "invalid ticket status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTicketStatus(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name          string
		currentStatus TicketStatus
		newStatus     TicketStatus
		want          bool
	}{
		{"open to processed", StatusOpen, StatusProcessed, true},
		{"open to resolved invalid", StatusOpen, StatusResolved, false},
		{"open to re-opened invalid", StatusOpen, StatusReopened, false},
		{"open to closed invalid", StatusOpen, StatusClosed, false},

		{"processed to resolved", StatusProcessed, StatusResolved, true},
		{"processed to re-opened", StatusProcessed, StatusReopened, true},
		{"processed to open invalid", StatusProcessed, StatusOpen, false},
		{"processed to closed invalid", StatusProcessed, StatusClosed, false},

		{"re-opened to processed", StatusReopened, StatusProcessed, true},
		{"re-opened to resolved invalid", StatusReopened, StatusResolved, false},
		{"re-opened to closed invalid", StatusReopened, StatusClosed, false},

		{"resolved to open invalid", StatusResolved, StatusOpen, false},
		{"resolved to processed invalid", StatusResolved, StatusProcessed, false},
		{"resolved to re-opened invalid", StatusResolved, StatusReopened, false},
		{"resolved to closed invalid", StatusResolved, StatusClosed, false},

		{"closed to open invalid", StatusClosed, StatusOpen, false},
		{"closed to processed invalid", StatusClosed, StatusProcessed, false},
		{"closed to re-opened invalid", StatusClosed, StatusReopened, false},

		{"invalid status cannot transition", TicketStatus("invalid"), StatusOpen, false},
		{"to invalid status", StatusOpen, TicketStatus("invalid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.currentStatus.CanTransitionTo(tt.newStatus)
			assert.Equal(t, tt.want, result, "transition from %s to %s", tt.currentStatus, tt.newStatus)
		})
	}
}

func TestTicketStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status TicketStatus
		want   bool
	}{
		{"open is not terminal", StatusOpen, false},
		{"processed is not terminal", StatusProcessed, false},
		{"re-opened is not terminal", StatusReopened, false},
		{"resolved is terminal", StatusResolved, true},
		{"closed is terminal", StatusClosed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestTicketStatus_TransitionPaths(t *testing.T) {
	t.Run("typical workflow: open -> processed -> resolved", func(t *testing.T) {
		current := StatusOpen
		assert.True(t, current.CanTransitionTo(StatusProcessed))

		current = StatusProcessed
		assert.True(t, current.CanTransitionTo(StatusResolved))
	})

	t.Run("rejection loop: processed -> re-opened -> processed -> resolved", func(t *testing.T) {
		current := StatusProcessed
		assert.True(t, current.CanTransitionTo(StatusReopened))

		current = StatusReopened
		assert.True(t, current.CanTransitionTo(StatusProcessed))

		current = StatusProcessed
		assert.True(t, current.CanTransitionTo(StatusResolved))
	})

	t.Run("closed is only reachable via override", func(t *testing.T) {
		for _, status := range AllStatuses() {
			assert.False(t, status.CanTransitionTo(StatusClosed), "%s should not reach closed through the normal lifecycle", status)
		}
	})
}

func TestTicketStatus_AllStatusesAreValid(t *testing.T) {
	for _, status := range AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			assert.True(t, status.IsValid(), "status %s should be valid", status)
		})
	}
}
