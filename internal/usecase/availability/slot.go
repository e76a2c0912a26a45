package availability

import (
	"slices"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
)

type Span struct {
	Start time.Time
	End   time.Time
}

func (s Span) Duration() time.Duration { return s.End.Sub(s.Start) }

// CapacityInfo is the capacity a resource can still offer on a slot. Total
// includes the remaining capacity of the resource's linked group.
type CapacityInfo struct {
	Total     int
	Remaining int
}

// Slot is one bookable time window. The same instants are exposed in the
// appointment timezone, the viewer timezone and UTC.
type Slot struct {
	Template    appointment.SlotTemplate
	Appointment Span
	Viewer      Span
	UTC         Span

	// Set by the users filter.
	StaffUser *appointment.StaffUser
	// Set by the resources filter, ordered by sequence.
	Resources []*resource.Resource
	// Capacity of every resource considered available for the slot.
	Capacity map[uuid.UUID]CapacityInfo
}

func newSlot(tmpl appointment.SlotTemplate, start, end time.Time, aptLoc, viewerLoc *time.Location) Slot {
	return Slot{
		Template:    tmpl,
		Appointment: Span{Start: start.In(aptLoc), End: end.In(aptLoc)},
		Viewer:      Span{Start: start.In(viewerLoc), End: end.In(viewerLoc)},
		UTC:         Span{Start: start.UTC(), End: end.UTC()},
	}
}

// Assigned reports whether a filter attached a staff user or resources.
func (s Slot) Assigned() bool {
	return s.StaffUser != nil || len(s.Resources) > 0
}

func (s Slot) HasResource(id uuid.UUID) bool {
	return slices.ContainsFunc(s.Resources, func(r *resource.Resource) bool { return r.ID() == id })
}

func sortByStart(slots []Slot) {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		return a.UTC.Start.Compare(b.UTC.Start)
	})
}

// DaySlots holds the slots starting on one viewer-local date.
type DaySlots struct {
	Date  tzutil.Date
	Slots []Slot
}

// GroupByDay groups slots by the viewer-local date of their start, keeping
// the input order inside and across days.
func GroupByDay(slots []Slot) []DaySlots {
	var days []DaySlots
	index := make(map[tzutil.Date]int)
	for _, s := range slots {
		d := tzutil.DateOf(s.Viewer.Start, s.Viewer.Start.Location())
		i, ok := index[d]
		if !ok {
			i = len(days)
			index[d] = i
			days = append(days, DaySlots{Date: d})
		}
		days[i].Slots = append(days[i].Slots, s)
	}
	return days
}
