package availability

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/booking"
	"appointment-engine/internal/domain/calendar"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../mock/availabilitymock/ports_mock.go -package=availabilitymock

// BookingStore reads resource occupancy. Both methods return the records
// overlapping [start, end) for the given resources.
type BookingStore interface {
	FindBookingLines(ctx context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Line, error)
	FindLeaveIntervals(ctx context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Interval, error)
}

// CalendarStore reads the busy calendar events attended by the given partners
// and overlapping [start, end].
type CalendarStore interface {
	FindBusyEvents(ctx context.Context, partnerIDs []uuid.UUID, start, end time.Time) ([]calendar.Event, error)
}

// SelectionCache shares capacity selections between requests. A miss is
// reported with ok == false and a nil error.
type SelectionCache interface {
	Get(ctx context.Context, key string) (ids []uuid.UUID, ok bool, err error)
	Set(ctx context.Context, key string, ids []uuid.UUID) error
}

type AppointmentTypeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Type, error)
}
