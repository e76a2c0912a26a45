package availability

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/booking"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type BookingRequest struct {
	ValidityRequest
}

// BookingProposal is what the booking collaborator needs to persist a new
// booking.
type BookingProposal struct {
	AppointmentTypeID uuid.UUID
	// uuid.Nil for resource-based types.
	StaffUserID    uuid.UUID
	Lines          []booking.LineDraft
	AttendeeStatus calendar.AttendeeState
	AskedCapacity  int
	Start          time.Time
	End            time.Time
}

// PrepareBooking re-validates the requested slot and, when it is still
// bookable, allocates capacity on the chosen resources. The boolean is false
// when the slot went stale or the resources lost the requested capacity.
func (e *engine) PrepareBooking(ctx context.Context, apt *appointment.Type, req BookingRequest) (proposal *BookingProposal, ok bool, err error) {
	ctx, span := e.tracer.Start(ctx, "availability.PrepareBooking")
	defer span.End()
	defer func(began time.Time) { e.observe("prepare_booking", began, err) }(time.Now())

	asked := max(req.AskedCapacity, 1)
	span.SetAttributes(
		attribute.String("appointment.type_id", apt.ID.String()),
		attribute.Int("appointment.asked_capacity", asked),
	)

	slot, err := e.matchSlot(ctx, apt, req.ValidityRequest)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if slot == nil {
		e.logger.Info("slot no longer available",
			slog.String("appointment_type", apt.ID.String()),
			slog.Time("start", req.Start))
		return nil, false, nil
	}

	proposal = &BookingProposal{
		AppointmentTypeID: apt.ID,
		AskedCapacity:     asked,
		Start:             slot.UTC.Start,
		End:               slot.UTC.End,
	}

	if apt.IsResourceBased() {
		lines, enough, err := e.allocate(ctx, apt, slot, req.ResourceIDs, asked)
		if err != nil {
			span.RecordError(err)
			return nil, false, err
		}
		if !enough {
			e.logger.Info("resources lost capacity",
				slog.String("appointment_type", apt.ID.String()),
				slog.Time("start", req.Start),
				slog.Int("asked_capacity", asked))
			return nil, false, nil
		}
		proposal.Lines = lines
	} else {
		proposal.StaffUserID = slot.StaffUser.ID
	}

	proposal.AttendeeStatus, err = e.DefaultAttendeeStatus(ctx, apt, proposal.Start, proposal.End, asked)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	return proposal, true, nil
}

// allocate spreads asked over the resources in sequence order using their
// own remaining capacity, read fresh from the store.
func (e *engine) allocate(ctx context.Context, apt *appointment.Type, slot *Slot, requested []uuid.UUID, asked int) ([]booking.LineDraft, bool, error) {
	var resources []*resource.Resource
	if len(requested) > 0 {
		for _, id := range requested {
			r, ok := apt.ResourceByID(id)
			if !ok {
				return nil, false, nil
			}
			resources = append(resources, r)
		}
	} else {
		resources = slices.Clone(slot.Resources)
	}
	resource.SortBySequence(resources)

	start, end := slot.UTC.Start, slot.UTC.End
	lines, err := e.bookings.FindBookingLines(ctx, resource.IDs(resources), start, end)
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "find booking lines"), errs.ErrStoreFailure)
	}

	remaining := make(map[uuid.UUID]int, len(resources))
	total := 0
	for _, r := range resources {
		rem := max(r.Capacity()-booking.UsedCapacity(lines, r.ID(), start, end), 0)
		remaining[r.ID()] = rem
		total += rem
	}
	if total < asked {
		return nil, false, nil
	}

	var drafts []booking.LineDraft
	left := asked
	for _, r := range resources {
		if left == 0 {
			break
		}
		reserved := min(remaining[r.ID()], left, r.Capacity())
		if reserved <= 0 {
			continue
		}
		left -= reserved
		used := r.Capacity()
		if r.Shareable() && apt.ResourceManageCapacity {
			used = reserved
		}
		drafts = append(drafts, booking.LineDraft{
			ResourceID:       r.ID(),
			CapacityReserved: reserved,
			CapacityUsed:     used,
		})
	}
	return drafts, true, nil
}
