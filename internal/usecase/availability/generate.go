package availability

import (
	"log/slog"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/tzutil"
)

// GenerateSlots expands the slot templates of apt into concrete slots between
// the appointment-timezone dates of first and last. A zero reference means
// now. Slots starting before the reference (plus the minimum scheduling
// notice when the reference is close to now) are skipped.
func (e *engine) GenerateSlots(apt *appointment.Type, first, last time.Time, viewerTZ string, reference time.Time) ([]Slot, error) {
	if !apt.Category.IsValid() {
		return nil, errs.Mark(errs.Newf("category %q", apt.Category), errs.ErrInvalidCategory)
	}
	aptLoc, err := apt.Location()
	if err != nil {
		return nil, err
	}
	viewerLoc := e.viewerLocation(viewerTZ, aptLoc)

	now := e.clock.Now()
	if reference.IsZero() {
		reference = now
	}
	refStart := reference
	if !refStart.After(now.Add(apt.MinSchedule())) {
		refStart = refStart.Add(apt.MinSchedule())
	}

	var slots []Slot
	if apt.Category == appointment.CategoryCustom {
		for _, tmpl := range apt.Slots {
			if tmpl.SlotType != appointment.SlotTypeUnique || tmpl.StartDatetime.Before(refStart) {
				continue
			}
			slots = append(slots, newSlot(tmpl, tmpl.StartDatetime, tmpl.EndDatetime, aptLoc, viewerLoc))
		}
	} else {
		if last.Before(reference) {
			return nil, nil
		}
		days := tzutil.DatesBetween(tzutil.DateOf(first, aptLoc), tzutil.DateOf(last, aptLoc))
		for _, day := range days {
			for _, tmpl := range apt.Slots {
				if tmpl.SlotType != appointment.SlotTypeRecurring || tmpl.Weekday != day.Weekday() {
					continue
				}
				slots = appendRecurring(slots, apt, tmpl, day, refStart, aptLoc, viewerLoc)
			}
		}
	}

	sortByStart(slots)
	e.logger.Debug("slots generated",
		slog.String("appointment_type", apt.ID.String()),
		slog.String("category", string(apt.Category)),
		slog.Time("first", first),
		slog.Time("last", last),
		slog.Int("count", len(slots)))
	return slots, nil
}

func appendRecurring(slots []Slot, apt *appointment.Type, tmpl appointment.SlotTemplate, day tzutil.Date, refStart time.Time, aptLoc, viewerLoc *time.Location) []Slot {
	step := apt.SlotDuration()

	start := tzutil.AtHour(day, tmpl.StartHour, aptLoc)
	start = advancePast(start, refStart, step)
	if apt.Category == appointment.CategoryPunctual && apt.StartDatetime != nil {
		start = advancePast(start, *apt.StartDatetime, step)
	}

	end := tzutil.AtHour(day, tmpl.EndHour24(), aptLoc)
	if apt.Category == appointment.CategoryPunctual && apt.EndDatetime != nil && end.After(*apt.EndDatetime) {
		end = *apt.EndDatetime
	}

	n := int(end.Sub(start) / step)
	for i := 0; i < n; i++ {
		s := start.Add(time.Duration(i) * step)
		slots = append(slots, newSlot(tmpl, s, s.Add(step), aptLoc, viewerLoc))
	}
	return slots
}

// advancePast moves start forward by whole steps until it is not before bound.
func advancePast(start, bound time.Time, step time.Duration) time.Time {
	if !start.Before(bound) {
		return start
	}
	k := (bound.Sub(start) + step - 1) / step
	return start.Add(k * step)
}
