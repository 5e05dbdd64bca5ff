package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructEntry(t *testing.T) {
	e, err := ReconstructEntry("alice", 5, 1000, 1000, 0, "", "Fix login", "assigned")
	require.NoError(t, err)

	assert.Equal(t, "alice", e.Worker())
	assert.Equal(t, uint(5), e.TicketID())
	assert.True(t, e.IsOpen())
	assert.Zero(t, e.Duration())

	closed, err := ReconstructEntry("alice", 5, 2000, 1000, 2000, "done", "Fix login", "assigned")
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, int64(1000), closed.Duration())
	assert.Equal(t, "done", closed.Comment())
}

func TestReconstructEntry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		worker  string
		ticket  uint
		start   int64
		end     int64
		wantErr string
	}{
		{
			name:    "missing worker",
			ticket:  5,
			start:   1000,
			wantErr: "worker is required",
		},
		{
			name:    "zero ticket",
			worker:  "alice",
			start:   1000,
			wantErr: "ticket ID cannot be zero",
		},
		{
			name:    "end before start",
			worker:  "alice",
			ticket:  5,
			start:   1000,
			end:     999,
			wantErr: "not after start time",
		},
		{
			name:    "end equals start",
			worker:  "alice",
			ticket:  5,
			start:   1000,
			end:     1000,
			wantErr: "not after start time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReconstructEntry(tt.worker, tt.ticket, tt.start, tt.start, tt.end, "", "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
