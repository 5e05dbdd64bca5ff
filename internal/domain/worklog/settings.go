package worklog

import (
	"context"
	"slices"
	"strconv"
	"strings"
)

// Setting keys as stored per scope. A scope ("syllabus") is the
// configuration domain a project belongs to; settings resolve per scope,
// never globally.
const (
	KeyAutoComment         = "auto_comment"
	KeyAutoStopOnClose     = "auto_stop_on_close"
	KeyAutoReassignOnStart = "auto_reassign_on_start"
	KeyReassignStatus      = "reassign_status"
	KeyReassignResolution  = "reassign_resolution"
	KeyAllowTaskSwitch     = "allow_task_switch"
	KeyEligibleStatuses    = "eligible_statuses"
	KeyRecordHoursField    = "record_hours_field"
	KeyRecordTotalHours    = "record_total_hours"
	KeyRoundUpMinutes      = "round_up_minutes"
)

// Settings are the per-scope policy knobs of the session manager.
type Settings struct {
	// AutoComment adds a descriptive ticket comment on stop even when the
	// worker supplied none.
	AutoComment bool

	// AutoStopOnClose stops whoever holds a ticket open when the tracker
	// reports a transition into the closed status.
	AutoStopOnClose bool

	// AutoReassignOnStart reassigns foreign tickets to the starting worker
	// instead of rejecting the start.
	AutoReassignOnStart bool

	// ReassignStatus and ReassignResolution are applied to the ticket
	// during such a reassignment.
	ReassignStatus     string
	ReassignResolution string

	// AllowTaskSwitch implicitly stops the worker's current open task when
	// starting another; off, a second start is rejected.
	AllowTaskSwitch bool

	// EligibleStatuses are the ticket statuses work may be started from.
	EligibleStatuses []string

	// RecordHoursField writes billed hours into the ticket's hours custom
	// field on stop; RecordTotalHours records them via the aggregate hours
	// integration. Either one switches the stop to the hours path.
	RecordHoursField bool
	RecordTotalHours bool

	// RoundUpMinutes is the increment worked minutes are rounded up to
	// before billing. Always >= 1.
	RoundUpMinutes int
}

// DefaultSettings returns the compiled-in defaults, used when a scope has
// no stored value for a key.
func DefaultSettings() Settings {
	return Settings{
		ReassignStatus:     "assigned",
		ReassignResolution: "reassigned",
		EligibleStatuses:   []string{"assigned"},
		RoundUpMinutes:     1,
	}
}

// IsEligibleStatus reports whether work may start from the given status.
func (s Settings) IsEligibleStatus(status string) bool {
	return slices.Contains(s.EligibleStatuses, status)
}

// HoursIntegrationEnabled reports whether stops take the hours path.
func (s Settings) HoursIntegrationEnabled() bool {
	return s.RecordHoursField || s.RecordTotalHours
}

// Apply overlays stored key/value pairs onto the settings. Unknown keys
// and unparsable values are ignored so a bad admin edit cannot take the
// scope down.
func (s *Settings) Apply(values map[string]string) {
	for key, raw := range values {
		switch key {
		case KeyAutoComment:
			applyBool(&s.AutoComment, raw)
		case KeyAutoStopOnClose:
			applyBool(&s.AutoStopOnClose, raw)
		case KeyAutoReassignOnStart:
			applyBool(&s.AutoReassignOnStart, raw)
		case KeyReassignStatus:
			if raw != "" {
				s.ReassignStatus = raw
			}
		case KeyReassignResolution:
			if raw != "" {
				s.ReassignResolution = raw
			}
		case KeyAllowTaskSwitch:
			applyBool(&s.AllowTaskSwitch, raw)
		case KeyEligibleStatuses:
			if statuses := SplitStatuses(raw); len(statuses) > 0 {
				s.EligibleStatuses = statuses
			}
		case KeyRecordHoursField:
			applyBool(&s.RecordHoursField, raw)
		case KeyRecordTotalHours:
			applyBool(&s.RecordTotalHours, raw)
		case KeyRoundUpMinutes:
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 {
				s.RoundUpMinutes = n
			}
		}
	}
}

// SplitStatuses parses a comma-separated status list, dropping blanks.
func SplitStatuses(raw string) []string {
	parts := strings.Split(raw, ",")
	statuses := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			statuses = append(statuses, p)
		}
	}
	return statuses
}

func applyBool(dst *bool, raw string) {
	if v, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
		*dst = v
	}
}

// SettingsProvider resolves the configuration scope of a project and the
// effective settings of a scope. Implementations merge stored values over
// DefaultSettings.
type SettingsProvider interface {
	// ResolveScope maps a project to its scope. Projects without an
	// explicit mapping resolve to scope 0, the shared default scope.
	ResolveScope(ctx context.Context, projectID uint) (uint, error)

	// Settings returns the effective settings of a scope.
	Settings(ctx context.Context, scopeID uint) (Settings, error)
}
