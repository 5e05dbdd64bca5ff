// Package dto holds the transport representations of work-log read models.
package dto

import (
	"fmt"

	"worklog/internal/domain/worklog"
	"worklog/internal/shared/biztime"
	"worklog/internal/shared/utils"
)

// EntryDTO is the wire form of a work interval, enriched with a
// human-readable delta line the way the tracker UI renders it.
type EntryDTO struct {
	Worker       string `json:"worker"`
	TicketID     uint   `json:"ticket_id"`
	Summary      string `json:"summary,omitempty"`
	TicketStatus string `json:"ticket_status,omitempty"`
	LastChange   int64  `json:"last_change"`
	StartTime    int64  `json:"start_time"`
	EndTime      int64  `json:"end_time"`
	Active       bool   `json:"active"`
	Delta        string `json:"delta"`
	Comment      string `json:"comment,omitempty"`
}

// EntryToDTO converts a domain entry.
func EntryToDTO(e *worklog.Entry) *EntryDTO {
	var delta string
	if e.IsOpen() {
		delta = fmt.Sprintf("Started %s ago (%s)",
			utils.HumanDurationSince(e.StartTime()),
			biztime.FormatUnix(e.StartTime()))
	} else {
		delta = fmt.Sprintf("Worked for %s (between %s and %s)",
			utils.HumanDuration(e.StartTime(), e.EndTime()),
			biztime.FormatUnix(e.StartTime()),
			biztime.FormatUnix(e.EndTime()))
	}

	return &EntryDTO{
		Worker:       e.Worker(),
		TicketID:     e.TicketID(),
		Summary:      e.Summary(),
		TicketStatus: e.TicketStatus(),
		LastChange:   e.LastChange(),
		StartTime:    e.StartTime(),
		EndTime:      e.EndTime(),
		Active:       e.IsOpen(),
		Delta:        delta,
		Comment:      e.Comment(),
	}
}

// EntriesToDTO converts a listing.
func EntriesToDTO(entries []*worklog.Entry) []*EntryDTO {
	out := make([]*EntryDTO, len(entries))
	for i, e := range entries {
		out[i] = EntryToDTO(e)
	}
	return out
}

// EventDTO is the wire form of a timeline event.
type EventDTO struct {
	Kind      string `json:"kind"`
	Worker    string `json:"worker"`
	TicketID  uint   `json:"ticket_id"`
	Summary   string `json:"summary,omitempty"`
	Status    string `json:"status,omitempty"`
	Time      int64  `json:"time"`
	StartTime int64  `json:"start_time"`
	Comment   string `json:"comment,omitempty"`
}

// EventToDTO converts a timeline event. Stop events carry a time-spent
// prefix on the comment, matching the timeline feed of the tracker.
func EventToDTO(ev worklog.Event) EventDTO {
	comment := ev.Comment
	if ev.Kind == worklog.EventStop {
		spent := fmt.Sprintf("(Time spent: %s)", utils.HumanDuration(ev.StartTime, ev.Time))
		if comment != "" {
			comment = spent + "\n\n" + comment
		} else {
			comment = spent
		}
	}

	return EventDTO{
		Kind:      string(ev.Kind),
		Worker:    ev.Worker,
		TicketID:  ev.TicketID,
		Summary:   ev.Summary,
		Status:    ev.Status,
		Time:      ev.Time,
		StartTime: ev.StartTime,
		Comment:   comment,
	}
}

// EventsToDTO converts a timeline listing.
func EventsToDTO(events []worklog.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, ev := range events {
		out[i] = EventToDTO(ev)
	}
	return out
}

// OpenWorkDTO reports who holds a ticket open.
type OpenWorkDTO struct {
	Worker    string `json:"worker"`
	Since     int64  `json:"since"`
	SinceText string `json:"since_text"`
}

// OpenWorkToDTO converts an open-work lookup result.
func OpenWorkToDTO(ow *worklog.OpenWork) *OpenWorkDTO {
	if ow == nil {
		return nil
	}
	return &OpenWorkDTO{
		Worker:    ow.Worker,
		Since:     ow.Since,
		SinceText: biztime.FormatUnix(ow.Since),
	}
}
