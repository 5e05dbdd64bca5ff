package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.False(t, s.AutoComment)
	assert.False(t, s.AutoStopOnClose)
	assert.False(t, s.AutoReassignOnStart)
	assert.False(t, s.AllowTaskSwitch)
	assert.Equal(t, "assigned", s.ReassignStatus)
	assert.Equal(t, "reassigned", s.ReassignResolution)
	assert.Equal(t, []string{"assigned"}, s.EligibleStatuses)
	assert.Equal(t, 1, s.RoundUpMinutes)
	assert.False(t, s.HoursIntegrationEnabled())
}

func TestSettings_Apply(t *testing.T) {
	s := DefaultSettings()
	s.Apply(map[string]string{
		KeyAutoComment:      "true",
		KeyAllowTaskSwitch:  "1",
		KeyEligibleStatuses: "assigned, accepted,in_progress",
		KeyRoundUpMinutes:   "15",
		KeyRecordTotalHours: "true",
	})

	assert.True(t, s.AutoComment)
	assert.True(t, s.AllowTaskSwitch)
	assert.Equal(t, []string{"assigned", "accepted", "in_progress"}, s.EligibleStatuses)
	assert.Equal(t, 15, s.RoundUpMinutes)
	assert.True(t, s.HoursIntegrationEnabled())
}

func TestSettings_ApplyIgnoresGarbage(t *testing.T) {
	s := DefaultSettings()
	s.Apply(map[string]string{
		KeyAutoComment:      "definitely",
		KeyRoundUpMinutes:   "-5",
		KeyEligibleStatuses: " , ,",
		"unknown_key":       "true",
	})

	assert.False(t, s.AutoComment)
	assert.Equal(t, 1, s.RoundUpMinutes)
	assert.Equal(t, []string{"assigned"}, s.EligibleStatuses)
}

func TestSettings_IsEligibleStatus(t *testing.T) {
	s := DefaultSettings()
	s.EligibleStatuses = []string{"assigned", "accepted"}

	assert.True(t, s.IsEligibleStatus("assigned"))
	assert.True(t, s.IsEligibleStatus("accepted"))
	assert.False(t, s.IsEligibleStatus("new"))
	assert.False(t, s.IsEligibleStatus(""))
}
