package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBilledMinutes_RoundsUpToIncrement(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		roundUp int
		want    float64
	}{
		{
			name:    "one minute bills a full increment",
			seconds: 60,
			roundUp: 15,
			want:    15,
		},
		{
			name:    "exact multiple stays as-is",
			seconds: 30 * 60,
			roundUp: 15,
			want:    30,
		},
		{
			name:    "one second over the multiple bills the next increment",
			seconds: 30*60 + 1,
			roundUp: 15,
			want:    45,
		},
		{
			name:    "default increment keeps raw minutes for exact values",
			seconds: 7 * 60,
			roundUp: 1,
			want:    7,
		},
		{
			name:    "partial minute rounds up with default increment",
			seconds: 90,
			roundUp: 1,
			want:    2,
		},
		{
			name:    "zero increment treated as one",
			seconds: 61,
			roundUp: 0,
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := int64(1_700_000_000)
			got := BilledMinutes(start, start+tt.seconds, tt.roundUp)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBilledMinutes_EmptyInterval(t *testing.T) {
	start := int64(1_700_000_000)
	assert.Zero(t, BilledMinutes(start, start, 15))
	assert.Zero(t, BilledMinutes(start, start-60, 15))
}

func TestBillableHours(t *testing.T) {
	start := int64(1_700_000_000)

	// 1 worked minute at a 15-minute increment bills a quarter hour.
	assert.InDelta(t, 0.25, BillableHours(start, start+60, 15), 1e-9)

	// 2 hours exactly.
	assert.InDelta(t, 2.0, BillableHours(start, start+2*3600, 15), 1e-9)
}
