package availability

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
)

// agenda indexes busy events per partner and per UTC date touched.
type agenda map[uuid.UUID]map[tzutil.Date][]calendar.Event

func newAgenda(events []calendar.Event, partnerIDs []uuid.UUID) agenda {
	a := make(agenda, len(partnerIDs))
	for _, ev := range events {
		days := tzutil.DatesBetween(tzutil.DateOf(ev.Start, time.UTC), tzutil.DateOf(ev.Stop, time.UTC))
		for _, pid := range partnerIDs {
			if !ev.Blocks(pid) {
				continue
			}
			byDay, ok := a[pid]
			if !ok {
				byDay = make(map[tzutil.Date][]calendar.Event)
				a[pid] = byDay
			}
			for _, d := range days {
				byDay[d] = append(byDay[d], ev)
			}
		}
	}
	return a
}

// FillUserAvailability assigns to each slot the first staff user, in a
// shuffled order, who is free for it. A nil users list means every staff user
// of the type. Slots nobody can take are left unassigned.
func (e *engine) FillUserAvailability(ctx context.Context, apt *appointment.Type, slots []Slot, start, end time.Time, users []appointment.StaffUser) error {
	if len(slots) == 0 {
		return nil
	}
	if users == nil {
		users = apt.StaffUsers
	}
	candidates := slices.Clone(users)
	if len(candidates) == 0 {
		return nil
	}
	e.shuffleUsers(candidates)

	partnerIDs := make([]uuid.UUID, 0, len(candidates))
	locs := make(map[uuid.UUID]*time.Location, len(candidates))
	for _, u := range candidates {
		if !slices.Contains(partnerIDs, u.PartnerID) {
			partnerIDs = append(partnerIDs, u.PartnerID)
		}
		locs[u.ID] = e.userLocation(u)
	}

	events, err := e.calendars.FindBusyEvents(ctx, partnerIDs, tzutil.StartOfDay(start, time.UTC), tzutil.EndOfDay(end, time.UTC))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "find busy events"), errs.ErrStoreFailure)
	}
	busy := newAgenda(events, partnerIDs)

	assigned := 0
	for i := range slots {
		for _, u := range candidates {
			if isUserAvailable(slots[i], u, locs[u.ID], busy) {
				staff := u
				slots[i].StaffUser = &staff
				assigned++
				break
			}
		}
	}

	e.logger.Debug("user availability filled",
		slog.String("appointment_type", apt.ID.String()),
		slog.Int("users", len(candidates)),
		slog.Int("events", len(events)),
		slog.Int("slots", len(slots)),
		slog.Int("assigned", assigned))
	return nil
}

func isUserAvailable(slot Slot, u appointment.StaffUser, loc *time.Location, busy agenda) bool {
	if !slot.Template.AllowsUser(u.ID) {
		return false
	}

	byDay := busy[u.PartnerID]
	if len(byDay) == 0 {
		return true
	}

	start, end := slot.UTC.Start, slot.UTC.End
	for _, d := range tzutil.DatesSpanned(start, end, time.UTC) {
		for _, ev := range byDay[d] {
			if !ev.AllDay && tzutil.Overlaps(ev.Start, ev.Stop, start, end) {
				return false
			}
		}
	}

	// All-day events are matched on the user's own calendar dates.
	for _, d := range tzutil.DatesSpanned(start, end, loc) {
		for _, ev := range byDay[d] {
			if ev.AllDay {
				return false
			}
		}
	}
	return true
}
