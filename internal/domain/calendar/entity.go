package calendar

import (
	"time"

	"github.com/google/uuid"
)

type ShowAs string

const (
	ShowAsBusy ShowAs = "busy"
	ShowAsFree ShowAs = "free"
)

type AttendeeState string

const (
	AttendeeStateNeedsAction AttendeeState = "needsAction"
	AttendeeStateTentative   AttendeeState = "tentative"
	AttendeeStateDeclined    AttendeeState = "declined"
	AttendeeStateAccepted    AttendeeState = "accepted"
)

type Attendee struct {
	PartnerID uuid.UUID
	State     AttendeeState
}

// Event is a calendar entry of one or more partners.
type Event struct {
	ID     uuid.UUID
	Start  time.Time
	Stop   time.Time
	AllDay bool
	ShowAs ShowAs

	Attendees []Attendee
}

// Blocks reports whether the event makes partnerID unavailable: the event is
// busy and the partner attends without having declined.
func (e Event) Blocks(partnerID uuid.UUID) bool {
	if e.ShowAs != ShowAsBusy {
		return false
	}
	for _, a := range e.Attendees {
		if a.PartnerID == partnerID {
			return a.State != AttendeeStateDeclined
		}
	}
	return false
}
