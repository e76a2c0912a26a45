package availability

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ValidityRequest describes a slot picked by a customer.
type ValidityRequest struct {
	// uuid.Nil lets any staff user take the slot.
	StaffUserID uuid.UUID
	// Empty lets the engine select resources.
	ResourceIDs    []uuid.UUID
	AskedCapacity  int
	ViewerTimezone string
	Start          time.Time
	// Duration in hours.
	Duration float64
}

// IsSlotStillValid re-runs generation and availability for exactly the
// requested slot. A stale slot is reported as false with a nil error; errors
// only come from the stores.
func (e *engine) IsSlotStillValid(ctx context.Context, apt *appointment.Type, req ValidityRequest) (valid bool, err error) {
	ctx, span := e.tracer.Start(ctx, "availability.IsSlotStillValid")
	defer span.End()
	defer func(began time.Time) { e.observe("is_slot_still_valid", began, err) }(time.Now())

	slot, err := e.matchSlot(ctx, apt, req)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	valid = slot != nil
	span.SetAttributes(
		attribute.String("appointment.type_id", apt.ID.String()),
		attribute.Bool("appointment.slot_valid", valid),
	)
	e.metrics.ObserveValidity(valid)
	return valid, nil
}

// matchSlot returns the regenerated slot matching req with its assignment, or
// nil when the slot is no longer bookable.
func (e *engine) matchSlot(ctx context.Context, apt *appointment.Type, req ValidityRequest) (*Slot, error) {
	start := req.Start.UTC()
	end := start.Add(tzutil.HoursToDuration(req.Duration))

	generated, err := e.GenerateSlots(apt, start, end, req.ViewerTimezone, time.Time{})
	if err != nil {
		return nil, err
	}
	var slots []Slot
	for _, s := range generated {
		if s.UTC.Start.Equal(start) && s.UTC.End.Equal(end) {
			slots = append(slots, s)
		}
	}
	if len(slots) == 0 {
		return nil, nil
	}

	if apt.IsResourceBased() {
		var resources []*resource.Resource
		for _, id := range req.ResourceIDs {
			r, ok := apt.ResourceByID(id)
			if !ok {
				return nil, nil
			}
			resources = append(resources, r)
		}
		if err := e.FillResourceAvailability(ctx, apt, slots, start, end, resources, req.AskedCapacity); err != nil {
			return nil, err
		}
	} else {
		var users []appointment.StaffUser
		if req.StaffUserID != uuid.Nil {
			u, ok := apt.StaffUserByID(req.StaffUserID)
			if !ok {
				return nil, nil
			}
			users = []appointment.StaffUser{*u}
		}
		if err := e.FillUserAvailability(ctx, apt, slots, start, end, users); err != nil {
			return nil, err
		}
	}

	duration := tzutil.Round(req.Duration, 2)
	for i := range slots {
		s := &slots[i]
		if !s.Assigned() {
			continue
		}
		if req.StaffUserID != uuid.Nil && (s.StaffUser == nil || s.StaffUser.ID != req.StaffUserID) {
			continue
		}
		if !hasAllResources(s, req.ResourceIDs) {
			continue
		}
		switch s.Template.SlotType {
		case appointment.SlotTypeRecurring:
			if tzutil.Round(apt.Duration, 2) != duration {
				continue
			}
		case appointment.SlotTypeUnique:
			if tzutil.Round(s.Template.Duration().Hours(), 2) != duration {
				continue
			}
		}
		return s, nil
	}
	return nil, nil
}

func hasAllResources(s *Slot, ids []uuid.UUID) bool {
	for _, id := range ids {
		if !s.HasResource(id) {
			return false
		}
	}
	return true
}
