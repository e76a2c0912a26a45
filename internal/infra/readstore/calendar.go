package readstore

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/infra"

	"github.com/google/uuid"
)

// One row per (event, attendee) pair; only the attendance of the requested
// partners is returned.
const findBusyEventsSQL = `
	SELECT e.id, e.start_at, e.stop_at, e.allday, e.show_as, a.partner_id, a.state
	FROM calendar_events e
	JOIN calendar_attendees a ON a.event_id = e.id
	WHERE a.partner_id = ANY($1)
	  AND e.active
	  AND e.show_as = 'busy'
	  AND e.start_at <= $3
	  AND e.stop_at >= $2
	ORDER BY e.start_at, e.id`

type CalendarReadStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewCalendarReadStore(db DBTX, logger *slog.Logger) *CalendarReadStore {
	return &CalendarReadStore{db: db, logger: orDiscard(logger)}
}

func (s *CalendarReadStore) FindBusyEvents(ctx context.Context, partnerIDs []uuid.UUID, start, end time.Time) ([]calendar.Event, error) {
	if len(partnerIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, findBusyEventsSQL, partnerIDs, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query calendar events", err)
	}
	defer rows.Close()

	var events []calendar.Event
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			ev        calendar.Event
			showAs    string
			partnerID uuid.UUID
			state     string
		)
		if err := rows.Scan(&ev.ID, &ev.Start, &ev.Stop, &ev.AllDay, &showAs, &partnerID, &state); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan calendar event", err)
		}
		attendee := calendar.Attendee{PartnerID: partnerID, State: calendar.AttendeeState(state)}

		if i, ok := index[ev.ID]; ok {
			events[i].Attendees = append(events[i].Attendees, attendee)
			continue
		}
		ev.ShowAs = calendar.ShowAs(showAs)
		ev.Attendees = []calendar.Attendee{attendee}
		index[ev.ID] = len(events)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read calendar events", err)
	}
	return events, nil
}
