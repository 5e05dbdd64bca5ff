package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/domain/worklog"
)

func startSettings(modify ...func(*worklog.Settings)) worklog.Settings {
	s := worklog.DefaultSettings()
	for _, m := range modify {
		m(&s)
	}
	return s
}

func newStartUseCase(
	repo *mockRepository,
	tickets *mockTicketStore,
	settings worklog.Settings,
	stop *mockStopWork,
) *StartWorkUseCase {
	uc := NewStartWorkUseCase(repo, tickets, &mockSettingsProvider{settings: settings}, stop, nopLogger{})
	uc.now = func() int64 { return 5000 }
	return uc
}

func TestStartWork_Success(t *testing.T) {
	var inserted struct {
		worker string
		ticket uint
		when   int64
	}
	repo := &mockRepository{
		insertStartFn: func(ctx context.Context, worker string, ticketID uint, when int64) error {
			inserted.worker = worker
			inserted.ticket = ticketID
			inserted.when = when
			return nil
		},
	}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
	uc := newStartUseCase(repo, tickets, startSettings(), &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)

	assert.True(t, result.Started)
	assert.Empty(t, result.Reason)
	assert.Equal(t, uint(7), result.TicketID)
	assert.Equal(t, int64(5000), result.StartTime)
	assert.Equal(t, "alice", inserted.worker)
	assert.Equal(t, uint(7), inserted.ticket)
	assert.Equal(t, int64(5000), inserted.when)
}

func TestStartWork_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		settings   worklog.Settings
		repo       *mockRepository
		wantReason string
	}{
		{
			name:       "anonymous user",
			username:   "",
			settings:   startSettings(),
			repo:       &mockRepository{},
			wantReason: "You need to be logged in to work on tickets.",
		},
		{
			name:     "ticket held by another user",
			username: "alice",
			settings: startSettings(),
			repo: &mockRepository{
				findOpenFn: func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
					return &worklog.OpenWork{Worker: "bob", Since: 4000}, nil
				},
			},
			wantReason: "Another user (bob) has been working on ticket #7 since",
		},
		{
			name:     "double start on same ticket",
			username: "alice",
			settings: startSettings(),
			repo: &mockRepository{
				findOpenFn: func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
					return &worklog.OpenWork{Worker: "alice", Since: 4000}, nil
				},
			},
			wantReason: "You are already working on ticket #7.",
		},
		{
			name:     "busy with another ticket",
			username: "alice",
			settings: startSettings(),
			repo: &mockRepository{
				latestForWorker: func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
					return openEntry(t, "alice", 5, 4000), nil
				},
			},
			wantReason: "You cannot work on ticket #7 as you are currently working on ticket #5.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
			uc := newStartUseCase(tt.repo, tickets, tt.settings, &mockStopWork{})

			result, err := uc.Execute(context.Background(), StartWorkCommand{Username: tt.username, TicketID: 7})
			require.NoError(t, err)

			assert.False(t, result.Started)
			assert.Contains(t, result.Reason, tt.wantReason)
		})
	}
}

func TestStartWork_IneligibleStatus(t *testing.T) {
	repo := &mockRepository{}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "new"))
	uc := newStartUseCase(repo, tickets, startSettings(), &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)

	assert.False(t, result.Started)
	assert.Equal(t, `You cannot work on a ticket with status "new".`, result.Reason)
}

func TestStartWork_EligibleStatusList(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.EligibleStatuses = []string{"assigned", "accepted", "reopened"}
	})
	repo := &mockRepository{}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "reopened"))
	uc := newStartUseCase(repo, tickets, settings, &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)
	assert.True(t, result.Started)
}

func TestStartWork_NotOwner(t *testing.T) {
	repo := &mockRepository{}
	tickets := newMockTicketStore(testTicket(7, 1, "bob", "assigned"))
	uc := newStartUseCase(repo, tickets, startSettings(), &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)

	assert.False(t, result.Started)
	assert.Equal(t, "You cannot work on ticket #7 as you are not the owner. You should speak to bob.", result.Reason)
}

func TestStartWork_AutoReassign(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AutoReassignOnStart = true
		s.ReassignStatus = "assigned"
		s.ReassignResolution = "reassigned"
	})
	repo := &mockRepository{}
	tickets := newMockTicketStore(testTicket(7, 1, "bob", "assigned"))
	uc := newStartUseCase(repo, tickets, settings, &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)
	assert.True(t, result.Started)

	require.Len(t, tickets.saves, 1)
	save := tickets.saves[0]
	assert.Equal(t, "alice", save.author)
	assert.Equal(t, "Automatically reassigning in order to start work.", save.message)
	assert.Equal(t, "alice", save.ticket.Owner)
	assert.Equal(t, "assigned", save.ticket.Status)
	assert.Equal(t, "reassigned", save.ticket.Resolution)
}

func TestStartWork_TaskSwitch(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AllowTaskSwitch = true
	})
	repo := &mockRepository{
		latestForWorker: func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
			return openEntry(t, "alice", 5, 4000), nil
		},
	}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
	stop := &mockStopWork{}
	uc := newStartUseCase(repo, tickets, settings, stop)

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)
	assert.True(t, result.Started)

	require.Len(t, stop.calls, 1)
	call := stop.calls[0]
	assert.Equal(t, "alice", call.Username)
	assert.Equal(t, uint(1), call.ProjectID)
	assert.Equal(t, int64(4999), call.StopTime, "previous task stops one second before the new start")
	assert.Equal(t, "Stopping work on this ticket to start work on #7.", call.Comment)
}

func TestStartWork_TaskSwitchNothingToStop(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AllowTaskSwitch = true
	})
	repo := &mockRepository{}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
	stop := &mockStopWork{result: &StopWorkResult{Stopped: false, Reason: "There are no active tasks."}}
	uc := newStartUseCase(repo, tickets, settings, stop)

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)

	assert.True(t, result.Started, "a no-active-tasks rejection from the implicit stop must not block the start")
}

func TestStartWork_ConcurrentStartLosesRace(t *testing.T) {
	repo := &mockRepository{
		insertStartFn: func(ctx context.Context, worker string, ticketID uint, when int64) error {
			return worklog.ErrTicketBusy
		},
	}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
	uc := newStartUseCase(repo, tickets, startSettings(), &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.NoError(t, err)

	assert.False(t, result.Started)
	assert.Equal(t, "Another user has just started working on ticket #7.", result.Reason)
}

func TestStartWork_StorageFailure(t *testing.T) {
	repo := &mockRepository{
		insertStartFn: func(ctx context.Context, worker string, ticketID uint, when int64) error {
			return errors.New("connection reset")
		},
	}
	tickets := newMockTicketStore(testTicket(7, 1, "alice", "assigned"))
	uc := newStartUseCase(repo, tickets, startSettings(), &mockStopWork{})

	result, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 7})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestStartWork_UnknownTicket(t *testing.T) {
	uc := newStartUseCase(&mockRepository{}, newMockTicketStore(), startSettings(), &mockStopWork{})

	_, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice", TicketID: 99})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStartWork_MissingTicketID(t *testing.T) {
	uc := newStartUseCase(&mockRepository{}, newMockTicketStore(), startSettings(), &mockStopWork{})

	_, err := uc.Execute(context.Background(), StartWorkCommand{Username: "alice"})
	require.Error(t, err)
}
