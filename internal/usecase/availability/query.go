package availability

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type Query struct {
	ViewerTimezone string
	// Restrict the search to these staff users or resources. Members that do
	// not belong to the type are ignored.
	FilterUsers     []uuid.UUID
	FilterResources []uuid.UUID
	// Defaults to 1.
	AskedCapacity int
	// Zero means now.
	Reference time.Time
}

// GetAppointmentSlots returns the bookable, assigned slots of apt ordered by
// start.
func (e *engine) GetAppointmentSlots(ctx context.Context, apt *appointment.Type, q Query) (slots []Slot, err error) {
	ctx, span := e.tracer.Start(ctx, "availability.GetAppointmentSlots")
	defer span.End()
	defer func(began time.Time) { e.observe("get_appointment_slots", began, err) }(time.Now())

	span.SetAttributes(
		attribute.String("appointment.type_id", apt.ID.String()),
		attribute.String("appointment.category", string(apt.Category)),
	)

	if !apt.Active {
		return nil, nil
	}

	now := e.clock.Now()
	reference := q.Reference
	if reference.IsZero() {
		reference = now
	}
	first, last, ok := searchWindow(apt, reference, now)
	if !ok {
		return nil, nil
	}

	generated, err := e.GenerateSlots(apt, first, last, q.ViewerTimezone, reference)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(generated) == 0 {
		return nil, nil
	}

	aptLoc, err := apt.Location()
	if err != nil {
		return nil, err
	}
	fillEnd := tzutil.EndOfDay(last, aptLoc)

	if apt.IsResourceBased() {
		resources, ok := filterResources(apt, q.FilterResources)
		if !ok {
			return nil, nil
		}
		err = e.FillResourceAvailability(ctx, apt, generated, first, fillEnd, resources, max(q.AskedCapacity, 1))
	} else {
		users, ok := filterUsers(apt, q.FilterUsers)
		if !ok {
			return nil, nil
		}
		err = e.FillUserAvailability(ctx, apt, generated, first, fillEnd, users)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for _, s := range generated {
		if s.Assigned() {
			slots = append(slots, s)
		}
	}

	span.SetAttributes(
		attribute.Int("appointment.slots_generated", len(generated)),
		attribute.Int("appointment.slots_available", len(slots)),
	)
	e.metrics.ObserveSlots(string(apt.Category), string(apt.ScheduleBasedOn), len(slots))
	e.logger.Debug("appointment slots computed",
		slog.String("appointment_type", apt.ID.String()),
		slog.Time("first", first),
		slog.Time("last", last),
		slog.Int("generated", len(generated)),
		slog.Int("available", len(slots)))
	return slots, nil
}

// searchWindow returns the UTC instants bounding slot generation.
func searchWindow(apt *appointment.Type, reference, now time.Time) (first, last time.Time, ok bool) {
	switch apt.Category {
	case appointment.CategoryCustom:
		start, end, found := apt.UniqueSlotRange()
		if !found {
			return first, last, false
		}
		if reference.Before(start) {
			start = reference
		}
		return start.Add(apt.MinSchedule()), end, true
	case appointment.CategoryPunctual:
		if apt.StartDatetime == nil || apt.EndDatetime == nil {
			return first, last, false
		}
		first = *apt.StartDatetime
		if now.After(first) {
			first = now
		}
		return first, *apt.EndDatetime, true
	default:
		return reference.Add(apt.MinSchedule()), reference.Add(apt.MaxSchedule()), true
	}
}

// filterUsers intersects the filter with the staff of the type. A nil result
// with ok means every staff user; !ok means the filter matched nobody.
func filterUsers(apt *appointment.Type, filter []uuid.UUID) ([]appointment.StaffUser, bool) {
	if len(filter) == 0 {
		return nil, true
	}
	var users []appointment.StaffUser
	for _, id := range filter {
		if u, ok := apt.StaffUserByID(id); ok {
			users = append(users, *u)
		}
	}
	return users, len(users) > 0
}

func filterResources(apt *appointment.Type, filter []uuid.UUID) ([]*resource.Resource, bool) {
	if len(filter) == 0 {
		return nil, true
	}
	var resources []*resource.Resource
	for _, id := range filter {
		if r, ok := apt.ResourceByID(id); ok {
			resources = append(resources, r)
		}
	}
	return resources, len(resources) > 0
}
