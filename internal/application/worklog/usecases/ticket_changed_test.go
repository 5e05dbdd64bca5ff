package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/domain/worklog"
)

func newTicketChangedUseCase(
	repo *mockRepository,
	tickets *mockTicketStore,
	settings worklog.Settings,
	stop *mockStopWork,
) *TicketChangedUseCase {
	return NewTicketChangedUseCase(repo, tickets, &mockSettingsProvider{settings: settings}, stop, nopLogger{})
}

func TestTicketChanged_AutoStopOnClose(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AutoStopOnClose = true
	})
	repo := &mockRepository{
		findOpenFn: func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
			return &worklog.OpenWork{Worker: "bob", Since: 4000}, nil
		},
	}
	tickets := newMockTicketStore(testTicket(5, 1, "bob", "closed"))
	stop := &mockStopWork{}
	uc := newTicketChangedUseCase(repo, tickets, settings, stop)

	result, err := uc.Execute(context.Background(), TicketChangedCommand{
		TicketID:  5,
		OldStatus: "assigned",
		NewStatus: "closed",
		When:      4800,
	})
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Equal(t, "bob", result.Worker)

	require.Len(t, stop.calls, 1)
	call := stop.calls[0]
	assert.Equal(t, "bob", call.Username)
	assert.Equal(t, uint(1), call.ProjectID)
	assert.Equal(t, int64(4800), call.StopTime)
	assert.Empty(t, call.Comment)
}

func TestTicketChanged_NoStop(t *testing.T) {
	tests := []struct {
		name      string
		oldStatus string
		newStatus string
		settings  worklog.Settings
		open      *worklog.OpenWork
	}{
		{
			name:      "not a close transition",
			oldStatus: "new",
			newStatus: "assigned",
			settings:  startSettings(func(s *worklog.Settings) { s.AutoStopOnClose = true }),
			open:      &worklog.OpenWork{Worker: "bob", Since: 4000},
		},
		{
			name:      "already closed",
			oldStatus: "closed",
			newStatus: "closed",
			settings:  startSettings(func(s *worklog.Settings) { s.AutoStopOnClose = true }),
			open:      &worklog.OpenWork{Worker: "bob", Since: 4000},
		},
		{
			name:      "auto-stop disabled",
			oldStatus: "assigned",
			newStatus: "closed",
			settings:  startSettings(),
			open:      &worklog.OpenWork{Worker: "bob", Since: 4000},
		},
		{
			name:      "nobody working",
			oldStatus: "assigned",
			newStatus: "closed",
			settings:  startSettings(func(s *worklog.Settings) { s.AutoStopOnClose = true }),
			open:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				findOpenFn: func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
					return tt.open, nil
				},
			}
			tickets := newMockTicketStore(testTicket(5, 1, "bob", tt.newStatus))
			stop := &mockStopWork{}
			uc := newTicketChangedUseCase(repo, tickets, tt.settings, stop)

			result, err := uc.Execute(context.Background(), TicketChangedCommand{
				TicketID:  5,
				OldStatus: tt.oldStatus,
				NewStatus: tt.newStatus,
			})
			require.NoError(t, err)

			assert.False(t, result.Stopped)
			assert.Empty(t, stop.calls)
		})
	}
}

func TestTicketChanged_RacedManualStop(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AutoStopOnClose = true
	})
	repo := &mockRepository{
		findOpenFn: func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
			return &worklog.OpenWork{Worker: "bob", Since: 4000}, nil
		},
	}
	tickets := newMockTicketStore(testTicket(5, 1, "bob", "closed"))
	stop := &mockStopWork{result: &StopWorkResult{Stopped: false, Reason: "There are no active tasks."}}
	uc := newTicketChangedUseCase(repo, tickets, settings, stop)

	result, err := uc.Execute(context.Background(), TicketChangedCommand{
		TicketID:  5,
		OldStatus: "assigned",
		NewStatus: "closed",
	})
	require.NoError(t, err)

	assert.False(t, result.Stopped)
}
