package usecases

import (
	"context"
	"testing"

	"worklog/internal/domain/tracker"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/logger"
)

// Function-field mocks. Unset fields fall back to empty results so a test
// only wires the calls it cares about.

type mockRepository struct {
	insertStartFn    func(ctx context.Context, worker string, ticketID uint, when int64) error
	closeOpenFn      func(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error
	findOpenFn       func(ctx context.Context, ticketID uint) (*worklog.OpenWork, error)
	latestForWorker  func(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error)
	listFn           func(ctx context.Context, projectID uint, worker string, mode worklog.ListMode) ([]*worklog.Entry, error)
	timelineEventsFn func(ctx context.Context, projectID uint, from, to int64) ([]worklog.Event, error)
}

func (m *mockRepository) InsertStart(ctx context.Context, worker string, ticketID uint, when int64) error {
	if m.insertStartFn == nil {
		return nil
	}
	return m.insertStartFn(ctx, worker, ticketID, when)
}

func (m *mockRepository) CloseOpen(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error {
	if m.closeOpenFn == nil {
		return nil
	}
	return m.closeOpenFn(ctx, worker, ticketID, lastChange, stopTime, comment)
}

func (m *mockRepository) FindOpen(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
	if m.findOpenFn == nil {
		return nil, nil
	}
	return m.findOpenFn(ctx, ticketID)
}

func (m *mockRepository) LatestForWorker(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
	if m.latestForWorker == nil {
		return nil, nil
	}
	return m.latestForWorker(ctx, worker, projectID)
}

func (m *mockRepository) List(ctx context.Context, projectID uint, worker string, mode worklog.ListMode) ([]*worklog.Entry, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, projectID, worker, mode)
}

func (m *mockRepository) TimelineEvents(ctx context.Context, projectID uint, from, to int64) ([]worklog.Event, error) {
	if m.timelineEventsFn == nil {
		return nil, nil
	}
	return m.timelineEventsFn(ctx, projectID, from, to)
}

type savedTicket struct {
	ticket  *tracker.Ticket
	author  string
	message string
	when    int64
}

type mockTicketStore struct {
	tickets map[uint]*tracker.Ticket
	saveErr error
	saves   []savedTicket
}

func newMockTicketStore(tickets ...*tracker.Ticket) *mockTicketStore {
	m := &mockTicketStore{tickets: make(map[uint]*tracker.Ticket)}
	for _, t := range tickets {
		m.tickets[t.ID] = t
	}
	return m
}

func (m *mockTicketStore) GetByID(ctx context.Context, id uint) (*tracker.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, tracker.ErrTicketNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTicketStore) Save(ctx context.Context, t *tracker.Ticket, author, message string, when int64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *t
	m.tickets[t.ID] = &copied
	m.saves = append(m.saves, savedTicket{ticket: &copied, author: author, message: message, when: when})
	return nil
}

type mockSettingsProvider struct {
	settings worklog.Settings
	scopeErr error
}

func (m *mockSettingsProvider) ResolveScope(ctx context.Context, projectID uint) (uint, error) {
	if m.scopeErr != nil {
		return 0, m.scopeErr
	}
	return 1, nil
}

func (m *mockSettingsProvider) Settings(ctx context.Context, scopeID uint) (worklog.Settings, error) {
	return m.settings, nil
}

type mockStopWork struct {
	result *StopWorkResult
	err    error
	calls  []StopWorkCommand
}

func (m *mockStopWork) Execute(ctx context.Context, cmd StopWorkCommand) (*StopWorkResult, error) {
	m.calls = append(m.calls, cmd)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &StopWorkResult{Stopped: true}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (l nopLogger) With(...any) logger.Interface  { return l }
func (l nopLogger) Named(string) logger.Interface { return l }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}

func openEntry(t *testing.T, worker string, ticketID uint, start int64) *worklog.Entry {
	t.Helper()
	e, err := worklog.ReconstructEntry(worker, ticketID, start, start, worklog.OpenEndTime, "", "", "")
	if err != nil {
		t.Fatalf("failed to build open entry: %v", err)
	}
	return e
}

func closedEntry(t *testing.T, worker string, ticketID uint, start, end int64) *worklog.Entry {
	t.Helper()
	e, err := worklog.ReconstructEntry(worker, ticketID, end, start, end, "", "", "")
	if err != nil {
		t.Fatalf("failed to build closed entry: %v", err)
	}
	return e
}

func testTicket(id, projectID uint, owner, status string) *tracker.Ticket {
	return &tracker.Ticket{
		ID:        id,
		ProjectID: projectID,
		Summary:   "Test ticket",
		Owner:     owner,
		Status:    status,
	}
}
