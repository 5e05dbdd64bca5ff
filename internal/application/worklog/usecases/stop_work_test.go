package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/domain/worklog"
)

func newStopUseCase(repo *mockRepository, tickets *mockTicketStore, settings worklog.Settings) *StopWorkUseCase {
	uc := NewStopWorkUseCase(repo, tickets, &mockSettingsProvider{settings: settings}, nopLogger{})
	uc.now = func() int64 { return 5000 }
	return uc
}

func activeRepo(t *testing.T, start int64) *mockRepository {
	t.Helper()
	return &mockRepository{
		latestForWorker: func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
			return openEntry(t, "alice", 5, start), nil
		},
	}
}

func TestStopWork_NoActiveTask(t *testing.T) {
	uc := newStopUseCase(&mockRepository{}, newMockTicketStore(), startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{Username: "alice", ProjectID: 1})
	require.NoError(t, err)

	assert.False(t, result.Stopped)
	assert.Equal(t, "There are no active tasks.", result.Reason)
}

func TestStopWork_ClosedLatestTaskIsNotActive(t *testing.T) {
	repo := &mockRepository{
		latestForWorker: func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
			return closedEntry(t, "alice", 5, 4000, 4500), nil
		},
	}
	uc := newStopUseCase(repo, newMockTicketStore(), startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{Username: "alice", ProjectID: 1})
	require.NoError(t, err)
	assert.False(t, result.Stopped)
}

func TestStopWork_StopTimeBounds(t *testing.T) {
	tests := []struct {
		name       string
		stopTime   int64
		wantReason string
	}{
		{
			name:       "before start",
			stopTime:   3000,
			wantReason: "before the start time",
		},
		{
			name:       "equal to start",
			stopTime:   4000,
			wantReason: "before the start time",
		},
		{
			name:       "in the future",
			stopTime:   6000,
			wantReason: "in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newStopUseCase(activeRepo(t, 4000), newMockTicketStore(), startSettings())

			result, err := uc.Execute(context.Background(), StopWorkCommand{
				Username:  "alice",
				ProjectID: 1,
				StopTime:  tt.stopTime,
			})
			require.NoError(t, err)

			assert.False(t, result.Stopped)
			assert.Contains(t, result.Reason, tt.wantReason)
		})
	}
}

func TestStopWork_DefaultsToNow(t *testing.T) {
	var closed struct {
		worker     string
		ticket     uint
		lastChange int64
		stopTime   int64
		comment    string
	}
	repo := activeRepo(t, 4000)
	repo.closeOpenFn = func(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error {
		closed.worker = worker
		closed.ticket = ticketID
		closed.lastChange = lastChange
		closed.stopTime = stopTime
		closed.comment = comment
		return nil
	}
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(repo, tickets, startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{Username: "alice", ProjectID: 1})
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Equal(t, uint(5), result.TicketID)
	assert.Equal(t, int64(5000), result.StopTime)
	assert.Equal(t, "alice", closed.worker)
	assert.Equal(t, uint(5), closed.ticket)
	assert.Equal(t, int64(4000), closed.lastChange)
	assert.Equal(t, int64(5000), closed.stopTime)

	// Neither auto-comment nor a worker comment nor hours recording: the
	// ticket must stay untouched.
	assert.Empty(t, tickets.saves)
}

func TestStopWork_AutoComment(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.AutoComment = true
	})
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(activeRepo(t, 4000), tickets, settings)

	result, err := uc.Execute(context.Background(), StopWorkCommand{Username: "alice", ProjectID: 1})
	require.NoError(t, err)
	assert.True(t, result.Stopped)

	require.Len(t, tickets.saves, 1)
	save := tickets.saves[0]
	assert.Equal(t, "alice", save.author)
	assert.Equal(t, int64(5000), save.when)
	assert.True(t, strings.HasPrefix(save.message, "alice worked on this ticket for"), "message = %q", save.message)
	assert.Contains(t, save.message, "between")
}

func TestStopWork_WorkerComment(t *testing.T) {
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(activeRepo(t, 4000), tickets, startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{
		Username:  "alice",
		ProjectID: 1,
		Comment:   "fixed the flaky test",
	})
	require.NoError(t, err)
	assert.True(t, result.Stopped)

	require.Len(t, tickets.saves, 1)
	message := tickets.saves[0].message
	assert.True(t, strings.HasPrefix(message, "alice worked on this ticket for"), "message = %q", message)
	assert.True(t, strings.HasSuffix(message, "\n\nfixed the flaky test"), "message = %q", message)
}

func TestStopWork_RecordHoursField(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.RecordHoursField = true
		s.RoundUpMinutes = 15
	})
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(activeRepo(t, 4000), tickets, settings)

	// 20 minutes worked, rounded up to 30 at a 15 minute increment.
	result, err := uc.Execute(context.Background(), StopWorkCommand{
		Username:  "alice",
		ProjectID: 1,
		StopTime:  4000 + 20*60,
	})
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Equal(t, 0.5, result.Hours)

	require.Len(t, tickets.saves, 1)
	save := tickets.saves[0]
	assert.Equal(t, 0.5, save.ticket.Hours)
	assert.Equal(t, "Hours recorded automatically by the work log service.", save.message)
}

func TestStopWork_RecordTotalHours(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.RecordTotalHours = true
		s.RoundUpMinutes = 15
	})
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(activeRepo(t, 4000), tickets, settings)

	result, err := uc.Execute(context.Background(), StopWorkCommand{
		Username:  "alice",
		ProjectID: 1,
		StopTime:  4000 + 20*60,
		Comment:   "pairing session",
	})
	require.NoError(t, err)
	assert.True(t, result.Stopped)

	require.Len(t, tickets.saves, 1)
	save := tickets.saves[0]
	assert.Equal(t, fmt.Sprintf("Hours recorded automatically by the work log service. %v hours\n\npairing session", 0.5), save.message)
	assert.Zero(t, save.ticket.Hours, "total-hours recording must not touch the hours field")
}

func TestStopWork_ExactIncrementIsNotRoundedUp(t *testing.T) {
	settings := startSettings(func(s *worklog.Settings) {
		s.RecordHoursField = true
		s.RoundUpMinutes = 15
	})
	tickets := newMockTicketStore(testTicket(5, 1, "alice", "assigned"))
	uc := newStopUseCase(activeRepo(t, 4000), tickets, settings)

	result, err := uc.Execute(context.Background(), StopWorkCommand{
		Username:  "alice",
		ProjectID: 1,
		StopTime:  4000 + 30*60,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Hours)
}

func TestStopWork_StaleEntry(t *testing.T) {
	repo := activeRepo(t, 4000)
	repo.closeOpenFn = func(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error {
		return worklog.ErrStaleEntry
	}
	uc := newStopUseCase(repo, newMockTicketStore(), startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{Username: "alice", ProjectID: 1})
	require.NoError(t, err)

	assert.False(t, result.Stopped)
	assert.Equal(t, "Your active task has already been stopped.", result.Reason)
}

func TestStopWork_AnonymousHasNoTasks(t *testing.T) {
	uc := newStopUseCase(&mockRepository{
		latestForWorker: func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
			t.Fatal("anonymous lookups must not hit the repository")
			return nil, nil
		},
	}, newMockTicketStore(), startSettings())

	result, err := uc.Execute(context.Background(), StopWorkCommand{ProjectID: 1})
	require.NoError(t, err)
	assert.False(t, result.Stopped)
	assert.Equal(t, "There are no active tasks.", result.Reason)
}
