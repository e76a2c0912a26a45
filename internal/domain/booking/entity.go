package booking

import (
	"time"

	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
)

// Line is the share of a resource consumed by one booking.
type Line struct {
	ID                uuid.UUID
	AppointmentTypeID uuid.UUID
	ResourceID        uuid.UUID
	EventStart        time.Time
	EventStop         time.Time
	// CapacityReserved is what the customer asked for; CapacityUsed is what
	// the booking blocks on the resource.
	CapacityReserved int
	CapacityUsed     int
}

func (l Line) Overlaps(start, end time.Time) bool {
	return tzutil.Overlaps(l.EventStart, l.EventStop, start, end)
}

// Interval is a half-open [Start, End) span during which a resource is
// unavailable, such as a leave or a maintenance window.
type Interval struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
}

// Overlaps ignores zero-length intervals.
func (i Interval) Overlaps(start, end time.Time) bool {
	if !i.End.After(i.Start) {
		return false
	}
	return tzutil.Overlaps(i.Start, i.End, start, end)
}

// LineDraft is a booking line proposed for a new booking, not yet persisted.
type LineDraft struct {
	ResourceID       uuid.UUID
	CapacityReserved int
	CapacityUsed     int
}

// UsedCapacity sums CapacityUsed of the lines of resourceID overlapping
// [start, end).
func UsedCapacity(lines []Line, resourceID uuid.UUID, start, end time.Time) int {
	used := 0
	for _, l := range lines {
		if l.ResourceID == resourceID && l.Overlaps(start, end) {
			used += l.CapacityUsed
		}
	}
	return used
}
