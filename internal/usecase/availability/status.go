package availability

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/tzutil"
)

// DefaultAttendeeStatus returns the initial attendee state of a new booking.
// Resource-based types with manual confirmation ask for confirmation once the
// booked share of their total capacity over the booking days reaches the
// configured percentage.
func (e *engine) DefaultAttendeeStatus(ctx context.Context, apt *appointment.Type, start, stop time.Time, capacityReserved int) (calendar.AttendeeState, error) {
	if !apt.IsResourceBased() || !apt.ResourceManualConfirmation {
		return calendar.AttendeeStateAccepted, nil
	}

	total := apt.ResourceTotalCapacity()
	if total <= 0 {
		return calendar.AttendeeStateNeedsAction, nil
	}

	dayStart := tzutil.StartOfDay(start, time.UTC)
	dayEnd := tzutil.EndOfDay(stop, time.UTC)
	lines, err := e.bookings.FindBookingLines(ctx, resource.IDs(apt.Resources), dayStart, dayEnd)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "find booking lines"), errs.ErrStoreFailure)
	}

	used := 0
	for _, l := range lines {
		if l.AppointmentTypeID == apt.ID && l.Overlaps(dayStart, dayEnd) {
			used += l.CapacityUsed
		}
	}

	ratio := float64(used+capacityReserved) / float64(total)
	if tzutil.Round(ratio, 2) >= tzutil.Round(apt.ResourceManualConfirmationPercentage, 2) {
		return calendar.AttendeeStateNeedsAction, nil
	}
	return calendar.AttendeeStateAccepted, nil
}
